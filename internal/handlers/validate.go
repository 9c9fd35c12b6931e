package handlers

import (
	"encoding/json"
	"net/url"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// SlugPattern is mirrored into the HTML pattern attribute of slug inputs.
const SlugPattern = `[a-z0-9\-]+`

func IsSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// IsURL accepts absolute http(s) URLs. Empty input is left to the
// required check.
func IsURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// isHref also allows site-relative links and in-page anchors, for buttons.
func isHref(s string) bool {
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "#") || strings.HasPrefix(s, "mailto:") || strings.HasPrefix(s, "tel:") {
		return true
	}
	return IsURL(s)
}

// MatchesQuery reports whether any field contains q, case-insensitively.
// An empty query matches everything.
func MatchesQuery(q string, fields ...string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func trimmed(p *string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(*p)
}

// nullable turns blank input into SQL NULL.
func nullable(p *string) *string {
	s := trimmed(p)
	if s == "" {
		return nil
	}
	return &s
}

// nullableValue is nullable for update maps, where a typed nil pointer would
// not be written as NULL by every dialect.
func nullableValue(p *string) any {
	if v := nullable(p); v != nil {
		return *v
	}
	return nil
}

func requireText(errs FieldErrors, field string, p *string, creating bool) {
	if p == nil {
		if creating {
			errs.Add(field, field+" is required")
		}
		return
	}
	if strings.TrimSpace(*p) == "" {
		errs.Add(field, field+" is required")
	}
}

func checkURL(errs FieldErrors, field string, p *string) {
	if s := trimmed(p); s != "" && !IsURL(s) {
		errs.Add(field, field+" must be a valid http(s) URL")
	}
}

func checkUUID(errs FieldErrors, field string, p *string, required bool) uuid.UUID {
	s := trimmed(p)
	if s == "" {
		if required {
			errs.Add(field, field+" is required")
		}
		return uuid.Nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		errs.Add(field, field+" must be a UUID")
	}
	return id
}

// checkJSONObject accepts null, an empty value, or a JSON object.
func checkJSONObject(errs FieldErrors, field string, raw json.RawMessage) {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		errs.Add(field, field+" must be a JSON object")
	}
}
