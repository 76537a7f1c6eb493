// Package mfield holds the form checks shared by the portfolio models.
// Every failure wraps movable.ErrValidation.
package mfield

import (
	"errors"
	"fmt"
	"net/mail"
	"net/url"
	"slices"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"

	"github.com/the-dev-tools/folio/pkg/movable"
)

// Checker collects field errors so a form reports all of them at once.
type Checker struct {
	errs []error
}

func (c *Checker) fail(field, format string, args ...any) {
	c.errs = append(c.errs, fmt.Errorf("%w: %s %s", movable.ErrValidation, field, fmt.Sprintf(format, args...)))
}

func (c *Checker) Required(field, v string) {
	if strings.TrimSpace(v) == "" {
		c.fail(field, "is required")
	}
}

func (c *Checker) MaxLen(field, v string, n int) {
	if utf8.RuneCountInString(v) > n {
		c.fail(field, "must be at most %d characters", n)
	}
}

// URL accepts empty values, "#" and absolute http(s) URLs.
func (c *Checker) URL(field, v string) {
	if v == "" || v == "#" {
		return
	}
	u, err := url.Parse(v)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		c.fail(field, "must be an http or https URL")
	}
}

func (c *Checker) Email(field, v string) {
	if v == "" {
		return
	}
	addr, err := mail.ParseAddress(v)
	if err != nil || addr.Address != v {
		c.fail(field, "must be an email address")
	}
}

func (c *Checker) OneOf(field, v string, allowed ...string) {
	if !slices.Contains(allowed, v) {
		c.fail(field, "must be one of %s", strings.Join(allowed, ", "))
	}
}

// HexColor accepts empty values and #rgb or #rrggbb.
func (c *Checker) HexColor(field, v string) {
	if v == "" {
		return
	}
	if (len(v) != 4 && len(v) != 7) || v[0] != '#' {
		c.fail(field, "must be a hex color")
		return
	}
	for _, r := range v[1:] {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			c.fail(field, "must be a hex color")
			return
		}
	}
}

func (c *Checker) Err() error {
	return errors.Join(c.errs...)
}

// SplitList parses a comma separated list, trimming blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func JoinList(items []string) string {
	return strings.Join(items, ", ")
}

// DecodeJSONList reads a JSON string array column. Rows written before the
// column held JSON carry a comma separated list, which is accepted too.
func DecodeJSONList(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err == nil {
		if out == nil {
			out = []string{}
		}
		return out
	}
	if out := SplitList(s); out != nil {
		return out
	}
	return []string{}
}

func EncodeJSONList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}
