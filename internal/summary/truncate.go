package summary

import "unicode/utf8"

// SizeTruncationMarker is appended whenever Truncate cuts its input
const SizeTruncationMarker = "\n\n[truncated due to size]"

// Truncate enforces a ceiling of maxChars characters (Unicode code points).
// Longer text is cut at exactly maxChars and the marker is appended; the cut is
// always a suffix cut, so trailing samples may be lost entirely.
func Truncate(text string, maxChars int) (string, bool) {
	// Byte length bounds rune count, so short text needs no counting
	if len(text) <= maxChars {
		return text, false
	}

	count := 0
	for offset := range text {
		if count == maxChars {
			return text[:offset] + SizeTruncationMarker, true
		}
		count++
	}

	// Fewer than maxChars runes despite the byte length
	return text, false
}

// CharCount returns the length of text in the unit Truncate measures
func CharCount(text string) int {
	return utf8.RuneCountInString(text)
}
