package server

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/voyagen/tvcatalog/internal/service"
)

// Maximum lengths (in runes) of the string query parameters.
const (
	maxFilterLen = 50
	maxSearchLen = 100
)

// listQueryFromValues sanitizes the List query parameters. Pagination values
// are read from their leading integer ("20abc" is 20, "2.5" is 2) and fall back
// to their defaults when there is none; range clamping is done by
// service.Catalog.List.
func listQueryFromValues(q url.Values) service.ListQuery {
	return service.ListQuery{
		Category: sanitizeString(q.Get("category"), maxFilterLen),
		Language: sanitizeString(q.Get("language"), maxFilterLen),
		Country:  sanitizeString(q.Get("country"), maxFilterLen),
		Search:   sanitizeString(q.Get("search"), maxSearchLen),
		Page:     parseIntDefault(q.Get("page"), 1),
		Limit:    parseIntDefault(q.Get("limit"), service.DefaultLimit),
	}
}

// sanitizeString replaces invalid UTF-8 with U+FFFD, trims surrounding
// whitespace and truncates to maxLen runes. An empty result means the
// parameter is absent.
func sanitizeString(v string, maxLen int) string {
	v = strings.TrimSpace(strings.ToValidUTF8(v, "\uFFFD"))
	if r := []rune(v); len(r) > maxLen {
		v = string(r[:maxLen])
	}
	return v
}

// parseIntDefault parses the optional sign and leading decimal digits of v,
// ignoring anything after them. Values out of range saturate.
func parseIntDefault(v string, def int) int {
	v = strings.TrimSpace(v)
	end := 0
	if end < len(v) && (v[end] == '+' || v[end] == '-') {
		end++
	}
	digits := end
	for end < len(v) && v[end] >= '0' && v[end] <= '9' {
		end++
	}
	if end == digits {
		return def
	}
	n, err := strconv.ParseInt(v[:end], 10, 32)
	if errors.Is(err, strconv.ErrRange) {
		if v[0] == '-' {
			return math.MinInt32
		}
		return math.MaxInt32
	}
	if err != nil {
		return def
	}
	return int(n)
}
