package navigation

import (
	"fmt"
	"strings"
)

// View identifies one screen of the client application.
type View string

const (
	ViewLanding       View = "LANDING"
	ViewLogin         View = "LOGIN"
	ViewOnboarding    View = "ONBOARDING"
	ViewDashboard     View = "DASHBOARD"
	ViewPortal        View = "PORTAL"
	ViewSuccess       View = "SUCCESS"
	ViewArchive       View = "ARCHIVE"
	ViewSettings      View = "SETTINGS"
	ViewAbout         View = "ABOUT"
	ViewEducation     View = "EDUCATION"
	ViewUpgrade       View = "UPGRADE"
	ViewPrivacy       View = "PRIVACY"
	ViewTerms         View = "TERMS"
	ViewAccessibility View = "ACCESSIBILITY"
)

// AllViews lists every view in declaration order.
var AllViews = []View{
	ViewLanding,
	ViewLogin,
	ViewOnboarding,
	ViewDashboard,
	ViewPortal,
	ViewSuccess,
	ViewArchive,
	ViewSettings,
	ViewAbout,
	ViewEducation,
	ViewUpgrade,
	ViewPrivacy,
	ViewTerms,
	ViewAccessibility,
}

// InitialView is where every fresh session starts.
const InitialView = ViewLanding

func (v View) String() string {
	return string(v)
}

// Valid reports whether v is a member of the view enumeration.
func (v View) Valid() bool {
	for _, known := range AllViews {
		if v == known {
			return true
		}
	}
	return false
}

// ParseView accepts a view name in any letter case.
func ParseView(raw string) (View, error) {
	v := View(strings.ToUpper(strings.TrimSpace(raw)))
	if !v.Valid() {
		return "", fmt.Errorf("unknown view %q", raw)
	}
	return v, nil
}

// ShowsHeader reports whether the shared header is rendered on v.
func ShowsHeader(v View) bool {
	switch v {
	case ViewLanding, ViewArchive, ViewSettings, ViewUpgrade, ViewSuccess,
		ViewPrivacy, ViewTerms, ViewAccessibility:
		return false
	}
	return true
}

// ShowsFooter reports whether the shared footer is rendered on v.
func ShowsFooter(v View) bool {
	return v != ViewPortal
}

// HasSidebar reports whether v is laid out next to the account sidebar.
func HasSidebar(v View) bool {
	switch v {
	case ViewUpgrade, ViewArchive, ViewSettings, ViewSuccess:
		return true
	}
	return false
}
