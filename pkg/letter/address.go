package letter

import (
	"regexp"
	"strings"
)

var (
	cityStateZip  = regexp.MustCompile(`,\s*([^,]+),\s*([A-Z]{2})\s+(\d{5}(?:-\d{4})?)$`)
	trailingComma = regexp.MustCompile(`,\s*$`)
	whitespace    = regexp.MustCompile(`\s+`)
)

const capitolCity = "Washington, DC"

// SplitAddress breaks a one-line mailing address into printable lines:
// "Street" and "City, ST ZIP" when the address ends that way, otherwise a
// break before "Washington, DC", otherwise the address as a single line.
func SplitAddress(address string) []string {
	clean := strings.TrimSpace(address)

	if m := cityStateZip.FindStringSubmatchIndex(clean); m != nil {
		street := strings.TrimSpace(clean[:m[0]])
		tail := clean[m[2]:m[3]] + ", " + clean[m[4]:m[5]] + " " + clean[m[6]:m[7]]
		return []string{street, tail}
	}

	if before, after, ok := strings.Cut(clean, capitolCity); ok {
		return []string{
			strings.TrimSpace(trailingComma.ReplaceAllString(before, "")),
			capitolCity + after,
		}
	}

	return []string{clean}
}

// FileName is the download name of a letter addressed to repName.
func FileName(repName string) string {
	return "CivicBridge_Letter_to_" + whitespace.ReplaceAllString(repName, "_") + ".pdf"
}

// LabelFileName is the download name of a mailing label for repName.
func LabelFileName(repName string) string {
	return "CivicBridge_Label_for_" + whitespace.ReplaceAllString(repName, "_") + ".pdf"
}
