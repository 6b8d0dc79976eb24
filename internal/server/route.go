package server

import (
	"errors"
	"regexp"
	"strings"
)

// RouteKind identifies which catalog operation a request maps to.
type RouteKind int

const (
	RouteInvalid RouteKind = iota
	RouteList
	RouteDetail
	RouteStats
)

func (k RouteKind) String() string {
	switch k {
	case RouteList:
		return "list"
	case RouteDetail:
		return "detail"
	case RouteStats:
		return "stats"
	default:
		return "invalid"
	}
}

// Route is the result of matching a catalog path. ID is set for RouteDetail only.
type Route struct {
	Kind RouteKind
	ID   string
}

const statsSegment = "stats"

var (
	errInvalidChannelID = errors.New("invalid channel id")

	// channelIDRe matches canonical UUID text (8-4-4-4-12 hex digits, any case).
	channelIDRe = regexp.MustCompile(`(?i)^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
)

// matchRoute resolves path (after stripping basePath) by its non-empty segments:
// zero or one segment lists, "<x>/stats" is the statistics route and
// "<x>/<id>" a detail lookup. A malformed id yields a RouteDetail together
// with errInvalidChannelID. Any other shape is RouteInvalid.
func matchRoute(basePath, path string) (Route, error) {
	segments := pathSegments(stripBasePath(basePath, path))
	switch len(segments) {
	case 0, 1:
		return Route{Kind: RouteList}, nil
	case 2:
		if segments[1] == statsSegment {
			return Route{Kind: RouteStats}, nil
		}
		id := segments[1]
		if !channelIDRe.MatchString(id) {
			return Route{Kind: RouteDetail}, errInvalidChannelID
		}
		return Route{Kind: RouteDetail, ID: id}, nil
	default:
		return Route{Kind: RouteInvalid}, nil
	}
}

// stripBasePath removes basePath from the front of path when it matches on a
// segment boundary.
func stripBasePath(basePath, path string) string {
	base := strings.TrimRight(basePath, "/")
	if base == "" {
		return path
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if path == base {
		return "/"
	}
	if rest, ok := strings.CutPrefix(path, base+"/"); ok {
		return "/" + rest
	}
	return path
}

func pathSegments(path string) []string {
	var segments []string
	for _, s := range strings.Split(path, "/") {
		if s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}
