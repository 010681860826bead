package extract

import (
	"regexp"
	"strings"
)

// tickerPattern matches an optional $ followed by 1-5 uppercase letters.
// Go's RE2 has no lookaround, so the word-boundary exclusions (no adjacent
// uppercase letter or digit) are applied over the match indices instead.
var tickerPattern = regexp.MustCompile(`\$?[A-Z]{1,5}`)

// ExtractTickers scans text for ticker mentions and returns the canonical
// symbols in match order, repeats preserved. Matching is case-insensitive
// on the input; output symbols are always uppercase with no $ prefix.
// The scan is pure and restartable: identical input yields identical output.
func ExtractTickers(text string, stop Stopwords) []string {
	if text == "" {
		return nil
	}

	upper := strings.ToUpper(text)
	var out []string
	for _, loc := range tickerPattern.FindAllStringIndex(upper, -1) {
		start, end := loc[0], loc[1]
		// A match embedded in a longer alphanumeric run is a substring of
		// something else (NASA1, TSLA2day), the dominant false positive.
		if start > 0 && isBoundaryBefore(upper[start-1]) {
			continue
		}
		if end < len(upper) && isBoundaryAfter(upper[end]) {
			continue
		}
		raw := upper[start:end]
		if sym, ok := Candidate(raw, stop); ok {
			out = append(out, sym)
		}
	}
	return out
}

// UniqueTickers returns the distinct tickers mentioned in text, in first-seen
// order. A ticker mentioned twice in one record counts once.
func UniqueTickers(text string, stop Stopwords) []string {
	all := ExtractTickers(text, stop)
	if len(all) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(all))
	var unique []string
	for _, t := range all {
		if _, dup := seen[t]; !dup {
			seen[t] = struct{}{}
			unique = append(unique, t)
		}
	}
	return unique
}

// Candidate applies the candidacy heuristics to one raw structural match and
// returns the canonical symbol on acceptance. Rules, in order:
//
//  1. $-prefixed single letters are accepted unconditionally ($F, $T): the
//     explicit prefix is unambiguous ticker intent.
//  2. Bare single letters are rejected.
//  3. Stopwords are rejected.
//  4. Degenerate repeated-letter strings (AAAA and friends) are rejected.
//
// Anything ambiguous is rejected; the domain wants signal, not noise.
func Candidate(raw string, stop Stopwords) (string, bool) {
	t := strings.ToUpper(raw)
	if rest, prefixed := strings.CutPrefix(t, "$"); prefixed {
		if len(rest) == 1 {
			return rest, true
		}
		t = rest
	}
	if len(t) == 1 {
		return "", false
	}
	if stop.Contains(t) {
		return "", false
	}
	if isRepeatedLetterRun(t) {
		return "", false
	}
	return t, true
}

// isRepeatedLetterRun reports whether the token is a four-or-more-of-a-kind
// letter run (AAAA, XXXXX), a keyboard-smash artifact rather than a symbol.
func isRepeatedLetterRun(t string) bool {
	if len(t) < 4 {
		return false
	}
	for i := 1; i < len(t); i++ {
		if t[i] != t[0] {
			return false
		}
	}
	return true
}

// isBoundaryBefore reports whether c may not immediately precede a match.
func isBoundaryBefore(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '$'
}

// isBoundaryAfter reports whether c may not immediately follow a match.
func isBoundaryAfter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
