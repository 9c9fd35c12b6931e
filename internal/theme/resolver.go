package theme

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
)

// Source reads a user's stored appearance. *store.Store satisfies it.
type Source interface {
	ActiveColor(ctx context.Context, userID uuid.UUID) (*models.UserColor, error)
	ActiveFonts(ctx context.Context, userID uuid.UUID) (datatypes.JSON, error)
}

type Origin int

const (
	FromDefault Origin = iota
	FromCookie
	FromStore
)

type Appearance struct {
	Color     HSL
	ColorFrom Origin
	Fonts     FontConfig
	FontsFrom Origin
}

type Request struct {
	ColorCookie string
	FontCookie  string
	UserID      *uuid.UUID
}

type Resolver struct {
	src Source
}

func NewResolver(src Source) *Resolver {
	return &Resolver{src: src}
}

// Resolve picks each value independently: a valid cookie wins without touching
// the store, then the user's active theme, then the compiled default. Lookup
// failures are never surfaced.
func (r *Resolver) Resolve(ctx context.Context, req Request) Appearance {
	a := Appearance{Color: DefaultColor, Fonts: DefaultFonts}

	if c, ok := ParseColorCookie(req.ColorCookie); ok {
		a.Color, a.ColorFrom = c, FromCookie
	} else {
		if req.ColorCookie != "" {
			logging.Log.Debug("ignoring malformed color cookie", zap.String("value", req.ColorCookie))
		}
		if c, ok := r.storedColor(ctx, req.UserID); ok {
			a.Color, a.ColorFrom = c, FromStore
		}
	}

	if f, ok := ParseFontCookie(req.FontCookie); ok {
		a.Fonts, a.FontsFrom = f, FromCookie
	} else {
		if req.FontCookie != "" {
			logging.Log.Debug("ignoring malformed font cookie", zap.String("value", req.FontCookie))
		}
		if f, ok := r.storedFonts(ctx, req.UserID); ok {
			a.Fonts, a.FontsFrom = f, FromStore
		}
	}
	return a
}

func (r *Resolver) storedColor(ctx context.Context, userID *uuid.UUID) (HSL, bool) {
	if r.src == nil || userID == nil {
		return HSL{}, false
	}
	c, err := r.src.ActiveColor(ctx, *userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logging.Log.Warn("active color lookup failed", zap.Error(err))
		}
		return HSL{}, false
	}
	return HSL{H: c.HslH, S: c.HslS, L: c.HslL}, true
}

func (r *Resolver) storedFonts(ctx context.Context, userID *uuid.UUID) (FontConfig, bool) {
	if r.src == nil || userID == nil {
		return FontConfig{}, false
	}
	raw, err := r.src.ActiveFonts(ctx, *userID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			logging.Log.Warn("active fonts lookup failed", zap.Error(err))
		}
		return FontConfig{}, false
	}
	f, ok := ParseFontConfig(raw)
	if !ok {
		logging.Log.Debug("stored font_family is not a valid pairing", zap.ByteString("value", raw))
	}
	return f, ok
}
