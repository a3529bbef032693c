package domain

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeMediaID prepares a document/pronunciation identity for use in a
// storage key: whitespace is trimmed and diacritics are stripped, so that
// accented source identifiers ("ọkụ") produce stable ASCII-safe keys
// ("oku"). Case and hyphens are preserved.
func NormalizeMediaID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	out, _, err := transform.String(stripMarks, id)
	if err != nil {
		// An untransformable id is kept verbatim rather than dropped.
		return id
	}
	return out
}

// HasDialectMarker reports whether a media identity names a dialectal
// recording. Dialectal ids append the dialect as a final hyphen-separated
// segment ("word-1-dialectA"); a trailing all-digit segment is a document
// counter, not a dialect ("word-1").
func HasDialectMarker(id string) bool {
	i := strings.LastIndexByte(id, '-')
	if i <= 0 || i == len(id)-1 {
		return false
	}
	last := id[i+1:]
	for _, r := range last {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
