package legislators

import (
	"regexp"
	"strings"
)

// States lists the two-letter codes accepted in addresses, including DC.
var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA", "HI", "ID", "IL", "IN", "IA",
	"KS", "KY", "LA", "ME", "MD", "MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
	"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC", "SD", "TN", "TX", "UT", "VT",
	"VA", "WA", "WV", "WI", "WY", "DC",
}

var (
	stateSet = func() map[string]bool {
		m := make(map[string]bool, len(States))
		for _, s := range States {
			m[s] = true
		}
		return m
	}()

	stateBeforeZip = regexp.MustCompile(`\b([A-Z]{2})\s+\d{5}`)
	twoLetterWord  = regexp.MustCompile(`\b[A-Z]{2}\b`)
)

// ParseState extracts a state code from a free-text address. A code
// immediately before a five digit ZIP wins; otherwise the right-most
// standalone state code is used.
func ParseState(address string) (string, bool) {
	upper := strings.ToUpper(address)

	if m := stateBeforeZip.FindStringSubmatch(upper); m != nil && stateSet[m[1]] {
		return m[1], true
	}

	matches := twoLetterWord.FindAllString(upper, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if stateSet[matches[i]] {
			return matches[i], true
		}
	}
	return "", false
}
