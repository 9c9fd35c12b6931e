package cdn

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/config"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
)

// TrashFolder is where trashed objects are moved, mirroring their old path.
const TrashFolder = "trash"

// ErrForeignURL is returned for URLs outside the configured pull zone, or
// whose path is not a plain object path.
var ErrForeignURL = errors.New("url is not served by this storage zone")

// BunnyClient talks to the Bunny storage API. Objects are addressed by path
// inside the zone; public URLs are served by the pull zone.
type BunnyClient struct {
	Client      *http.Client
	BaseURL     string
	Zone        string
	AccessKey   string
	PullZoneURL string
}

func NewBunnyClient(cfg config.Config) *BunnyClient {
	return &BunnyClient{
		Client:      &http.Client{Timeout: 30 * time.Second},
		BaseURL:     "https://" + cfg.BunnyStorageHostname,
		Zone:        cfg.BunnyStorageZone,
		AccessKey:   cfg.BunnyStoragePassword,
		PullZoneURL: strings.TrimRight(cfg.BunnyPullZoneURL, "/"),
	}
}

// UpstreamError is a non-2xx answer from the storage API.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("bunny %s failed: %d %s - %s", e.Op, e.Status, http.StatusText(e.Status), e.Body)
}

func (c *BunnyClient) objectURL(p string) string {
	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(c.BaseURL, "/"), c.Zone, strings.TrimLeft(p, "/"))
}

// PublicURL is the pull-zone URL an uploaded path is served from.
func (c *BunnyClient) PublicURL(p string) string {
	return strings.TrimRight(c.PullZoneURL, "/") + "/" + strings.TrimLeft(p, "/")
}

// PathFromURL strips the pull-zone prefix. ok is false for foreign URLs and
// for paths that could escape the object they name.
func (c *BunnyClient) PathFromURL(publicURL string) (string, bool) {
	prefix := strings.TrimRight(c.PullZoneURL, "/") + "/"
	if !strings.HasPrefix(publicURL, prefix) {
		return "", false
	}
	p := strings.TrimPrefix(publicURL, prefix)
	if p == "" || strings.ContainsAny(p, "?#\\") {
		return "", false
	}
	for _, seg := range strings.Split(p, "/") {
		if seg == "." || seg == ".." {
			return "", false
		}
	}
	return p, true
}

func (c *BunnyClient) do(req *http.Request, op string) (*http.Response, error) {
	req.Header.Set("AccessKey", c.AccessKey)
	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bunny %s: %w", op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpstreamError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

// Upload stores data at p and returns its public URL.
func (c *BunnyClient) Upload(ctx context.Context, p string, data []byte) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.objectURL(p), bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.do(req, "upload")
	if err != nil {
		return "", err
	}
	resp.Body.Close()
	return c.PublicURL(p), nil
}

func (c *BunnyClient) Download(ctx context.Context, p string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.objectURL(p), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req, "download")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *BunnyClient) Delete(ctx context.Context, p string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.objectURL(p), nil)
	if err != nil {
		return err
	}
	resp, err := c.do(req, "delete")
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// Move copies the object behind publicURL to newPath and removes the old copy.
// A failed removal is logged; the move still counts as done. Moving an object
// onto its own path is a no-op.
func (c *BunnyClient) Move(ctx context.Context, publicURL, newPath string) (string, error) {
	oldPath, ok := c.PathFromURL(publicURL)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, publicURL)
	}
	newPath = CleanPath(newPath)
	if newPath == CleanPath(oldPath) {
		return publicURL, nil
	}
	data, err := c.Download(ctx, oldPath)
	if err != nil {
		return "", err
	}
	newURL, err := c.Upload(ctx, newPath, data)
	if err != nil {
		return "", err
	}
	if err := c.Delete(ctx, oldPath); err != nil {
		logging.Log.Warn("failed to delete old object after move", zap.String("path", oldPath), zap.Error(err))
	}
	return newURL, nil
}

// MoveToFolder keeps the file name and swaps the folder.
func (c *BunnyClient) MoveToFolder(ctx context.Context, publicURL, folder string) (string, error) {
	oldPath, ok := c.PathFromURL(publicURL)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, publicURL)
	}
	return c.Move(ctx, publicURL, CleanPath(folder+"/"+path.Base(oldPath)))
}

// Trash moves the object under trash/, keeping its full path.
func (c *BunnyClient) Trash(ctx context.Context, publicURL string) (string, error) {
	oldPath, ok := c.PathFromURL(publicURL)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrForeignURL, publicURL)
	}
	return c.Move(ctx, publicURL, CleanPath(TrashFolder+"/"+oldPath))
}

// CleanPath collapses duplicate slashes and drops a leading one.
func CleanPath(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return strings.TrimPrefix(p, "/")
}
