package handlers

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/services/cdn"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/services/upload"
)

// Mover relocates stored objects. *cdn.BunnyClient satisfies it.
type Mover interface {
	MoveToFolder(ctx context.Context, publicURL, folder string) (string, error)
	Trash(ctx context.Context, publicURL string) (string, error)
}

// UploadHandler is nil-safe on its dependencies: without CDN credentials
// every endpoint answers 503.
type UploadHandler struct {
	Relay *upload.Relay
	Files Mover
}

type uploadURLReq struct {
	ImageURL   string `json:"imageUrl" form:"imageUrl"`
	FolderPath string `json:"folderPath" form:"folderPath"`
}

type moveReq struct {
	ImageURL      string `json:"imageUrl"`
	NewFolderPath string `json:"newFolderPath"`
}

func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if h.Relay == nil {
		return fail(c, fiber.StatusServiceUnavailable, "CDN is not configured")
	}
	ctx := c.UserContext()

	if fh, err := c.FormFile("file"); err == nil {
		f, err := fh.Open()
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Could not read uploaded file")
		}
		defer f.Close()
		data, err := io.ReadAll(io.LimitReader(f, h.Relay.MaxBytes+1))
		if err != nil {
			return fail(c, fiber.StatusBadRequest, "Could not read uploaded file")
		}
		url, err := h.Relay.FromFile(ctx, c.FormValue("folderPath"), fh.Filename, fh.Header.Get(fiber.HeaderContentType), data)
		return h.respond(c, url, err)
	}

	var req uploadURLReq
	if err := c.BodyParser(&req); err != nil || strings.TrimSpace(req.ImageURL) == "" {
		return fail(c, fiber.StatusBadRequest, "No file or imageUrl provided")
	}
	url, err := h.Relay.FromURL(ctx, req.FolderPath, req.ImageURL)
	return h.respond(c, url, err)
}

func (h *UploadHandler) respond(c *fiber.Ctx, url string, err error) error {
	if err != nil {
		return relayFail(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"url":     url,
	})
}

// relayFail: client mistakes are 400, storage failures 502.
func relayFail(c *fiber.Ctx, err error) error {
	var ue *cdn.UpstreamError
	switch {
	case upload.IsValidation(err):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, cdn.ErrForeignURL):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.As(err, &ue):
		logging.Log.Warn("cdn upstream error", zap.String("op", ue.Op), zap.Int("status", ue.Status))
		return fail(c, fiber.StatusBadGateway, ue.Error())
	}
	logging.Log.Error("upload failed", zap.Error(err))
	return fail(c, fiber.StatusBadGateway, "Upload failed: "+err.Error())
}

func (h *UploadHandler) Move(c *fiber.Ctx) error {
	if h.Files == nil {
		return fail(c, fiber.StatusServiceUnavailable, "CDN is not configured")
	}
	var req moveReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	errs := FieldErrors{}
	if !IsURL(strings.TrimSpace(req.ImageURL)) {
		errs.Add("imageUrl", "imageUrl must be a valid http(s) URL")
	}
	folder := strings.TrimSpace(req.NewFolderPath)
	if folder == "" {
		errs.Add("newFolderPath", "newFolderPath is required")
	} else if strings.Contains("/"+folder+"/", "/../") {
		errs.Add("newFolderPath", "newFolderPath must not contain '..'")
	}
	if len(errs) > 0 {
		return validationFail(c, errs)
	}

	url, err := h.Files.MoveToFolder(c.UserContext(), strings.TrimSpace(req.ImageURL), folder)
	if err != nil {
		return relayFail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "url": url})
}

func (h *UploadHandler) Trash(c *fiber.Ctx) error {
	if h.Files == nil {
		return fail(c, fiber.StatusServiceUnavailable, "CDN is not configured")
	}
	var req moveReq
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if !IsURL(strings.TrimSpace(req.ImageURL)) {
		errs := FieldErrors{}
		errs.Add("imageUrl", "imageUrl must be a valid http(s) URL")
		return validationFail(c, errs)
	}

	url, err := h.Files.Trash(c.UserContext(), strings.TrimSpace(req.ImageURL))
	if err != nil {
		return relayFail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "url": url})
}
