package util

import (
	"errors"
	"io/fs"
	"math"
	"net/url"
	"os"
	"path"
	"strings"
)

func DirExists(path string) bool {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false
	}
	return info.IsDir()
}

// PathExt returns the lowercased file extension of a URL or path with any
// query string / fragment stripped, e.g. "https://x/y/annots.bed?v=2" -> ".bed".
func PathExt(rawURL string) string {
	s := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		s = u.Path
	} else {
		// Not a parsable URL, fall back to manual query stripping.
		if i := strings.IndexAny(s, "?#"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.ToLower(path.Ext(s))
}

// RoundPx rounds a pixel offset to the nearest whole pixel.
func RoundPx(px float64) int {
	return int(math.Round(px))
}

// RoundMid rounds the midpoint of two pixel offsets to the nearest integer.
// For a <= b the result stays within [a, b].
func RoundMid(a, b int) int {
	return int(math.Round(float64(a+b) / 2))
}
