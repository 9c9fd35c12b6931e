package theme

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
)

// maxHeadScan is how much markup is held back while looking for <head>.
const maxHeadScan = 8192

// HeadInjector is a streaming filter that inserts a payload right after the
// document's <head> start tag and passes everything else through untouched.
// Output is held back until the tag is found or maxHeadScan bytes have been
// buffered; in the latter case the buffer is flushed as-is and nothing is
// injected. Close must be called to flush a short document, and falls back to
// injecting after <html> when no <head> appeared.
type HeadInjector struct {
	w       io.Writer
	payload []byte
	buf     bytes.Buffer
	done    bool

	injected bool
}

func NewHeadInjector(w io.Writer, payload string) *HeadInjector {
	return &HeadInjector{w: w, payload: []byte(payload)}
}

// Injected reports whether the payload was written.
func (h *HeadInjector) Injected() bool { return h.injected }

func (h *HeadInjector) Write(p []byte) (int, error) {
	if h.done {
		return h.w.Write(p)
	}
	h.buf.Write(p)

	if at, ok := startTagEnd(h.buf.Bytes(), "head"); ok {
		return len(p), h.emit(at)
	}
	if h.buf.Len() > maxHeadScan {
		h.done = true
		_, err := h.w.Write(h.buf.Bytes())
		h.buf.Reset()
		return len(p), err
	}
	return len(p), nil
}

func (h *HeadInjector) Close() error {
	if h.done {
		return nil
	}
	b := h.buf.Bytes()
	if at, ok := startTagEnd(b, "head"); ok {
		return h.emit(at)
	}
	if at, ok := startTagEnd(b, "html"); ok {
		return h.emit(at)
	}
	h.done = true
	_, err := h.w.Write(b)
	h.buf.Reset()
	return err
}

func (h *HeadInjector) emit(at int) error {
	h.done = true
	h.injected = true
	b := h.buf.Bytes()
	defer h.buf.Reset()
	if _, err := h.w.Write(b[:at]); err != nil {
		return err
	}
	if _, err := h.w.Write(h.payload); err != nil {
		return err
	}
	_, err := h.w.Write(b[at:])
	return err
}

// startTagEnd returns the offset just past the first complete start tag with
// the given name. Comments, doctype and raw text are skipped by the tokenizer,
// so "<header>" or "<!-- <head> -->" never match.
func startTagEnd(b []byte, name string) (int, bool) {
	z := html.NewTokenizer(bytes.NewReader(b))
	off := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			return 0, false
		}
		off += len(z.Raw())
		if tt == html.StartTagToken || tt == html.SelfClosingTagToken {
			tn, _ := z.TagName()
			if string(tn) == name {
				return off, true
			}
		}
	}
}
