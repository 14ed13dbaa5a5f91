// Package textnorm provides the text normalization primitives shared by the
// structuring pipeline. Normalization is used for matching only; values stored
// in the canonical record keep their original casing and punctuation.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// Mis-encoded dash sequences seen in PDF extractions, plus the Unicode dash
// variants, all unified to ASCII "-".
var dashReplacer = strings.NewReplacer(
	"â€“", "-", // mojibake en dash
	"â€”", "-", // mojibake em dash
	"–", "-",
	"—", "-",
	"−", "-",
)

// accentFold maps accented Latin letters to their base letter, equivalent to
// NFKD decomposition followed by dropping combining marks for the range that
// shows up in resume text.
var accentFold = map[rune]rune{
	'à': 'a', 'á': 'a', 'â': 'a', 'ã': 'a', 'ä': 'a', 'å': 'a',
	'è': 'e', 'é': 'e', 'ê': 'e', 'ë': 'e',
	'ì': 'i', 'í': 'i', 'î': 'i', 'ï': 'i',
	'ò': 'o', 'ó': 'o', 'ô': 'o', 'õ': 'o', 'ö': 'o',
	'ù': 'u', 'ú': 'u', 'û': 'u', 'ü': 'u',
	'ç': 'c', 'ñ': 'n', 'ý': 'y', 'ÿ': 'y',
	'À': 'a', 'Á': 'a', 'Â': 'a', 'Ã': 'a', 'Ä': 'a', 'Å': 'a',
	'È': 'e', 'É': 'e', 'Ê': 'e', 'Ë': 'e',
	'Ì': 'i', 'Í': 'i', 'Î': 'i', 'Ï': 'i',
	'Ò': 'o', 'Ó': 'o', 'Ô': 'o', 'Õ': 'o', 'Ö': 'o',
	'Ù': 'u', 'Ú': 'u', 'Û': 'u', 'Ü': 'u',
	'Ç': 'c', 'Ñ': 'n', 'Ý': 'y',
	'ę': 'e', 'ą': 'a', 'š': 's', 'ž': 'z',
}

var multiSpace = regexp.MustCompile(`\s{2,}`)

// NormalizeForMatch lowers, strips diacritics, unifies dashes and removes
// every character outside [a-z0-9 :/|.-]. The result is only ever compared
// against lexicon entries, never stored.
func NormalizeForMatch(s string) string {
	if s == "" {
		return ""
	}
	s = dashReplacer.Replace(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if folded, ok := accentFold[r]; ok {
			r = folded
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '\t':
			b.WriteByte(' ')
		case r == ':', r == '/', r == '|', r == '.', r == '-':
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(multiSpace.ReplaceAllString(b.String(), " "))
}

// DedupeKeepOrder removes case-insensitive duplicates, keeping first-seen
// order and casing. Empty entries are dropped.
func DedupeKeepOrder(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))
	for _, item := range items {
		trimmed := strings.TrimSpace(item)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, trimmed)
	}
	return result
}

// MergeUnique unions two lists, deduplicated, base entries first.
func MergeUnique(base, extra []string) []string {
	combined := make([]string, 0, len(base)+len(extra))
	combined = append(combined, base...)
	combined = append(combined, extra...)
	return DedupeKeepOrder(combined)
}

var techSplitPattern = regexp.MustCompile(`\s*[·•|;,]\s*`)

// SplitTechnologies splits a technology list line on the delimiters resumes
// actually use: middle dot, bullet, pipe, semicolon and comma.
func SplitTechnologies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := techSplitPattern.Split(value, -1)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// CleanCompanyName trims separator punctuation left over from splitting a
// header line and collapses repeated spaces.
func CleanCompanyName(value string) string {
	cleaned := strings.Trim(value, " -|:;")
	return multiSpace.ReplaceAllString(cleaned, " ")
}

// Lines splits raw text into trimmed, non-empty lines. Line breaks are the
// only structural signal upstream extraction guarantees.
func Lines(raw string) []string {
	var out []string
	for _, line := range strings.Split(raw, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

var bulletPrefix = regexp.MustCompile(`^[-\x{2013}\x{2022}\x{00b7}]\s*`)

// StripBullet removes a leading bullet glyph from a line.
func StripBullet(line string) string {
	return strings.TrimSpace(bulletPrefix.ReplaceAllString(strings.TrimSpace(line), ""))
}

// JoinFragmented merges lines that are sentence continuations of the previous
// line, a common artifact of reflowed PDF text: the fragment starts lowercase
// and the previous line carries no terminal period.
func JoinFragmented(items []string) []string {
	if len(items) == 0 {
		return items
	}
	result := make([]string, 0, len(items))
	for _, raw := range items {
		line := StripBullet(raw)
		if line == "" {
			continue
		}
		first := []rune(line)[0]
		if len(result) > 0 && unicode.IsLower(first) && !strings.HasSuffix(strings.TrimRight(result[len(result)-1], " "), ".") {
			result[len(result)-1] = strings.TrimRight(result[len(result)-1], " ") + " " + line
			continue
		}
		result = append(result, line)
	}
	return result
}
