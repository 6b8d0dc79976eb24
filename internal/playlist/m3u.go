// Package playlist reads channel records from M3U playlists.
package playlist

import (
	"bufio"
	"errors"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/voyagen/tvcatalog/internal/models"
)

// Placeholder facet values for entries whose EXTINF line lacks the attribute.
const (
	UnknownCategory = "Uncategorized"
	UnknownLanguage = "Unknown"
	UnknownCountry  = "Unknown"
)

var (
	reTvgName     = regexp.MustCompile(`tvg-name="([^"]*)"`)
	reTvgID       = regexp.MustCompile(`tvg-id="([^"]*)"`)
	reTvgLogo     = regexp.MustCompile(`tvg-logo="([^"]*)"`)
	reTvgLanguage = regexp.MustCompile(`tvg-language="([^"]*)"`)
	reTvgCountry  = regexp.MustCompile(`tvg-country="([^"]*)"`)
	reGroup       = regexp.MustCompile(`group-title="([^"]*)"`)
)

var errNoName = errors.New("no name in EXTINF")

// ParseM3U reads an M3U playlist and returns one channel per EXTINF/URL pair.
// IDs are derived from the stream URL so they stay stable across reloads;
// duplicate URLs keep their first entry.
func ParseM3U(r io.Reader) ([]models.Channel, error) {
	var channels []models.Channel
	seen := make(map[string]bool)
	scanner := bufio.NewScanner(r)
	// Some playlists have very long EXTINF lines.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	now := time.Now().UTC()
	var extinf string
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "":
		case strings.HasPrefix(strings.ToUpper(line), "#EXTINF"):
			extinf = line
		case strings.HasPrefix(line, "#"):
			// #EXTM3U, #EXTVLCOPT and other directives carry nothing we keep.
		default:
			if extinf == "" {
				continue
			}
			ch, err := channelFromEXTINF(extinf, line)
			extinf = ""
			if err != nil || seen[ch.ID] {
				continue
			}
			seen[ch.ID] = true
			ch.CreatedAt = now
			channels = append(channels, ch)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return channels, nil
}

func channelFromEXTINF(extinf, streamURL string) (models.Channel, error) {
	name := matchFirst(reTvgName, extinf)
	if name == "" {
		name = extinfTitle(extinf)
	}
	if name == "" {
		name = matchFirst(reTvgID, extinf)
	}
	if name == "" {
		return models.Channel{}, errNoName
	}

	ch := models.Channel{
		ID:        uuid.NewSHA1(uuid.NameSpaceURL, []byte(streamURL)).String(),
		Name:      name,
		Category:  firstListValue(matchFirst(reGroup, extinf), UnknownCategory),
		Language:  firstListValue(matchFirst(reTvgLanguage, extinf), UnknownLanguage),
		Country:   firstListValue(matchFirst(reTvgCountry, extinf), UnknownCountry),
		StreamURL: streamURL,
	}
	if logo := matchFirst(reTvgLogo, extinf); logo != "" {
		ch.LogoURL = &logo
	}
	return ch, nil
}

// extinfTitle returns the display title: the text after the first comma that
// is not inside a quoted attribute value.
func extinfTitle(extinf string) string {
	inQuotes := false
	for i := 0; i < len(extinf); i++ {
		switch extinf[i] {
		case '"':
			inQuotes = !inQuotes
		case ',':
			if !inQuotes {
				return strings.TrimSpace(extinf[i+1:])
			}
		}
	}
	return ""
}

func matchFirst(re *regexp.Regexp, s string) string {
	m := re.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return strings.TrimSpace(m[1])
}

// firstListValue returns the first entry of a ';'-separated attribute, or def.
func firstListValue(v, def string) string {
	first, _, _ := strings.Cut(v, ";")
	if first = strings.TrimSpace(first); first != "" {
		return first
	}
	return def
}
