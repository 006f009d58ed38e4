package sorting

import (
	"net/url"
	"strings"
)

// Parser extracts requested sorts from a raw query string.
type Parser interface {
	Parse(rawQuery string) []Field
}

// QueryParser reads the conventional nested form sort[<field>]=<direction>,
// e.g. "sort[price]=asc&sort[name]=desc".
//
// Request order is significant (it becomes ORDER BY order), so the raw
// query string is walked pair by pair instead of going through url.Values,
// which would lose ordering across field names.
//
// Absent or malformed sort parameters degrade to no sorts requested:
// a flat "sort=price", an unclosed bracket or an empty field name
// contribute nothing and never produce an error. Direction tokens are
// passed through verbatim; strictness is the validator's job.
type QueryParser struct{}

func (QueryParser) Parse(rawQuery string) []Field {
	var fields []Field

	for _, pair := range strings.Split(rawQuery, "&") {
		if pair == "" {
			continue
		}

		rawKey, rawValue, _ := strings.Cut(pair, "=")

		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}

		name, ok := sortFieldName(key)
		if !ok {
			continue
		}

		direction, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		fields = append(fields, Field{Name: name, Direction: direction})
	}

	return fields
}

// sortFieldName extracts <field> from a "sort[<field>]" key.
func sortFieldName(key string) (string, bool) {
	rest, ok := strings.CutPrefix(key, "sort[")
	if !ok {
		return "", false
	}
	name, ok := strings.CutSuffix(rest, "]")
	if !ok || name == "" || strings.ContainsAny(name, "[]") {
		return "", false
	}
	return name, true
}
