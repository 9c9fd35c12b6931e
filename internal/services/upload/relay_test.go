package upload

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStorage struct {
	paths []string
	err   error
}

func (s *recordingStorage) Upload(ctx context.Context, p string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	s.paths = append(s.paths, p)
	return "https://cdn.example.com/" + p, nil
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func newRelay(s Storage) *Relay {
	r := NewRelay(s, 10*1024*1024)
	r.NewName = func() string { return "image_fixed" }
	return r
}

func TestFromFileUploads(t *testing.T) {
	st := &recordingStorage{}
	url, err := newRelay(st).FromFile(context.Background(), "sections//hero/", "Photo.PNG", "image/png", pngBytes(t))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/sections/hero/image_fixed.png", url)
	assert.Equal(t, []string{"sections/hero/image_fixed.png"}, st.paths)
}

func TestFromFileValidation(t *testing.T) {
	data := pngBytes(t)
	cases := []struct {
		name, folder, ct string
		data             []byte
	}{
		{"missing folder", "", "image/png", data},
		{"traversal", "a/../b", "image/png", data},
		{"pdf", "docs", "application/pdf", data},
		{"svg", "docs", "image/svg+xml", data},
		{"mislabelled", "img", "image/jpeg", data},
		{"garbage", "img", "image/png", []byte("not an image")},
	}
	for _, tc := range cases {
		st := &recordingStorage{}
		_, err := newRelay(st).FromFile(context.Background(), tc.folder, "x.png", tc.ct, tc.data)
		require.Error(t, err, tc.name)
		assert.True(t, IsValidation(err), tc.name)
		assert.Empty(t, st.paths, tc.name)
	}
}

func TestFromFileTooLarge(t *testing.T) {
	st := &recordingStorage{}
	r := newRelay(st)
	r.MaxBytes = 10
	_, err := r.FromFile(context.Background(), "img", "a.png", "image/png", pngBytes(t))
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Empty(t, st.paths)
}

func TestFromFileUpstreamFailure(t *testing.T) {
	st := &recordingStorage{err: errors.New("bunny upload failed: 401")}
	_, err := newRelay(st).FromFile(context.Background(), "img", "a.png", "image/png", pngBytes(t))
	require.Error(t, err)
	assert.False(t, IsValidation(err))
}

func TestFromURL(t *testing.T) {
	data := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.png":
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(data)
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	st := &recordingStorage{}
	r := newRelay(st)
	r.Fetcher = srv.Client()

	url, err := r.FromURL(context.Background(), "remote", srv.URL+"/ok.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/remote/image_fixed.png", url)

	for _, bad := range []string{srv.URL + "/page", srv.URL + "/missing.png", "ftp://example.com/a.png", "not a url"} {
		_, err := r.FromURL(context.Background(), "remote", bad)
		require.Error(t, err, bad)
		assert.True(t, IsValidation(err), bad)
	}
	assert.Len(t, st.paths, 1)
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "jpeg", extension("a.JPEG", "image/jpeg"))
	assert.Equal(t, "jpg", extension("noext", "image/jpeg"))
	assert.Equal(t, "webp", extension("weird.ph p", "image/webp"))
}
