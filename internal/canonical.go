package internal

import (
	"net/url"
	"sort"
	"strings"
)

// EncodingMode selects how values are escaped in the query string.
type EncodingMode string

const (
	// FormEncoding escapes like application/x-www-form-urlencoded: spaces become '+'.
	FormEncoding EncodingMode = "form"
	// PercentEncoding escapes spaces as "%20"; all other bytes as FormEncoding.
	PercentEncoding EncodingMode = "percent"
)

func (m EncodingMode) escape(value string) string {
	escaped := url.QueryEscape(value)
	if m == PercentEncoding {
		// a literal '+' is already escaped as %2B, so every remaining '+' is a space
		return strings.ReplaceAll(escaped, "+", "%20")
	}
	return escaped
}

// Canonicalize sorts the parameters by key and returns the escaped query
// string and the raw sign string.
//
// The sign string joins key=value pairs without escaping; '&' or '=' inside a
// value is left as is, the same way the gateway builds its own sign data.
func Canonicalize(params map[string]string, mode EncodingMode) (query string, sign string) {
	if len(params) == 0 {
		return "", ""
	}

	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var q, s strings.Builder
	for i, key := range keys {
		if i > 0 {
			q.WriteByte('&')
			s.WriteByte('&')
		}
		value := params[key]
		q.WriteString(mode.escape(key))
		q.WriteByte('=')
		q.WriteString(mode.escape(value))
		s.WriteString(key)
		s.WriteByte('=')
		s.WriteString(value)
	}
	return q.String(), s.String()
}
