package upload

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	_ "golang.org/x/image/webp"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/services/cdn"
)

// AllowedTypes is the MIME allow-list for uploads, in the order reported to clients.
var AllowedTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

// image.DecodeConfig format name per declared type.
var formatOf = map[string]string{
	"image/jpeg": "jpeg",
	"image/jpg":  "jpeg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

var extOf = map[string]string{
	"image/jpeg": "jpg",
	"image/jpg":  "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

// ValidationError marks input the client must fix; nothing was sent upstream.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// Storage receives validated bytes. *cdn.BunnyClient satisfies it.
type Storage interface {
	Upload(ctx context.Context, path string, data []byte) (string, error)
}

// Relay validates images and forwards them to storage. It keeps nothing locally.
type Relay struct {
	Storage  Storage
	Fetcher  *http.Client
	MaxBytes int64
	NewName  func() string
}

func NewRelay(s Storage, maxBytes int64) *Relay {
	return &Relay{
		Storage:  s,
		Fetcher:  &http.Client{Timeout: 15 * time.Second},
		MaxBytes: maxBytes,
		NewName:  func() string { return "image_" + ulid.Make().String() },
	}
}

func normalizeType(ct string) string {
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(ct))
	}
	return mt
}

func isAllowed(ct string) bool {
	_, ok := formatOf[ct]
	return ok
}

func (r *Relay) tooLarge() error {
	return invalid("File size exceeds maximum of %dMB", r.MaxBytes/1024/1024)
}

func (r *Relay) checkFolder(folder string) (string, error) {
	folder = strings.TrimSpace(folder)
	if folder == "" {
		return "", invalid("folderPath is required")
	}
	for _, seg := range strings.Split(folder, "/") {
		if seg == ".." {
			return "", invalid("folderPath must not contain '..'")
		}
	}
	return folder, nil
}

// sniff rejects bytes that do not decode as the declared image family.
func sniff(ct string, data []byte) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return invalid("File is not a readable image")
	}
	if format != formatOf[ct] {
		return invalid("File content is %s, not %s", format, ct)
	}
	return nil
}

// extension prefers a short alphanumeric suffix from name, then the type.
func extension(name, ct string) string {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
	if ext != "" && len(ext) <= 5 && isAlnum(ext) {
		return ext
	}
	return extOf[ct]
}

func isAlnum(s string) bool {
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

// ObjectPath builds "<folder>/<name>.<ext>" with duplicate slashes collapsed.
func ObjectPath(folder, name, ext string) string {
	return cdn.CleanPath(folder + "/" + name + "." + ext)
}

// FromFile relays a multipart upload.
func (r *Relay) FromFile(ctx context.Context, folder, filename, contentType string, data []byte) (string, error) {
	folder, err := r.checkFolder(folder)
	if err != nil {
		return "", err
	}
	ct := normalizeType(contentType)
	if !isAllowed(ct) {
		return "", invalid("Invalid file type. Allowed types: %s", strings.Join(AllowedTypes, ", "))
	}
	if int64(len(data)) > r.MaxBytes {
		return "", r.tooLarge()
	}
	if err := sniff(ct, data); err != nil {
		return "", err
	}
	return r.Storage.Upload(ctx, ObjectPath(folder, r.NewName(), extension(filename, ct)), data)
}

// FromURL downloads a remote image, validates it and relays it.
func (r *Relay) FromURL(ctx context.Context, folder, imageURL string) (string, error) {
	folder, err := r.checkFolder(folder)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(strings.TrimSpace(imageURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", invalid("imageUrl must be an absolute http(s) URL")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", invalid("imageUrl must be an absolute http(s) URL")
	}
	resp, err := r.Fetcher.Do(req)
	if err != nil {
		return "", invalid("Failed to download image from URL: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", invalid("Failed to download image from URL: %s", resp.Status)
	}

	ct := normalizeType(resp.Header.Get("Content-Type"))
	if !isAllowed(ct) {
		return "", invalid("Invalid image type from URL. Allowed types: %s", strings.Join(AllowedTypes, ", "))
	}
	if resp.ContentLength > r.MaxBytes {
		return "", r.tooLarge()
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, r.MaxBytes+1))
	if err != nil {
		return "", invalid("Failed to download image from URL: %v", err)
	}
	if int64(len(data)) > r.MaxBytes {
		return "", r.tooLarge()
	}
	if err := sniff(ct, data); err != nil {
		return "", err
	}
	return r.Storage.Upload(ctx, ObjectPath(folder, r.NewName(), extension(u.Path, ct)), data)
}
