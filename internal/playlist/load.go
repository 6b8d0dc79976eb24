package playlist

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/voyagen/tvcatalog/internal/models"
)

const (
	userAgent    = "tvcatalog/1.0"
	fetchTimeout = 30 * time.Second
)

// IsSource reports whether source names an M3U playlist (an http(s) URL or a
// .m3u/.m3u8 file) rather than a YAML fixture file.
func IsSource(source string) bool {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return true
	}
	switch strings.ToLower(filepath.Ext(source)) {
	case ".m3u", ".m3u8":
		return true
	}
	return false
}

// Load reads channels from a playlist URL or file.
func Load(ctx context.Context, source string) ([]models.Channel, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return Fetch(ctx, source)
	}
	f, err := os.Open(source)
	if err != nil {
		return nil, fmt.Errorf("open playlist: %w", err)
	}
	defer f.Close()
	return ParseM3U(f)
}

// Fetch downloads and parses the playlist at url.
func Fetch(ctx context.Context, url string) ([]models.Channel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("NewRequest: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch playlist: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch playlist: HTTP %d", resp.StatusCode)
	}
	return ParseM3U(resp.Body)
}
