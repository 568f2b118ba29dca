// Package extract holds the small text-extraction helpers shared by the
// resolution and reconciliation paths.
package extract

import (
	"regexp"
	"strings"
)

var yearPattern = regexp.MustCompile(`\d{4}`)

// Year returns the first 4-digit run found anywhere in s, or "" when none
// exists. Pubdates from the search API are free-form (commonly YYYYMMDD or
// bare YYYY), so no plausibility check is applied.
func Year(s string) string {
	return yearPattern.FindString(strings.TrimSpace(s))
}

// ISBN13 picks the 13-digit token out of a whitespace-joined identifier
// string. The search API returns "ISBN10 ISBN13", a single token, or nothing;
// token order is not assumed. Returns "" when no token qualifies.
func ISBN13(s string) string {
	for _, token := range strings.Fields(s) {
		if len(token) == 13 && allDigits(token) {
			return token
		}
	}
	return ""
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

var markupReplacer = strings.NewReplacer("<b>", "", "</b>", "")

// StripMarkup removes the bold markup the search API embeds in result titles.
func StripMarkup(s string) string {
	return markupReplacer.Replace(s)
}
