package navigation

// SessionClass describes who is asking to navigate.
type SessionClass string

const (
	// Anonymous visitors have neither an account nor a stored address.
	Anonymous SessionClass = "anonymous"
	// Guest visitors supplied an address but have no account.
	Guest SessionClass = "guest"
	// Authenticated visitors are signed in.
	Authenticated SessionClass = "authenticated"
)

const (
	MessageHistoryRequiresAccount = "Please sign in to access your history and settings."
	MessageSignInRequired         = "Please sign in or enter your address to continue."
)

var guestAllowed = map[View]bool{
	ViewLanding:       true,
	ViewLogin:         true,
	ViewDashboard:     true,
	ViewPortal:        true,
	ViewEducation:     true,
	ViewUpgrade:       true,
	ViewSuccess:       true,
	ViewAbout:         true,
	ViewPrivacy:       true,
	ViewTerms:         true,
	ViewAccessibility: true,
}

var anonymousAllowed = map[View]bool{
	ViewLogin:         true,
	ViewLanding:       true,
	ViewAbout:         true,
	ViewUpgrade:       true,
	ViewPrivacy:       true,
	ViewTerms:         true,
	ViewAccessibility: true,
}

// State is the navigation state owned by the client.
type State struct {
	Current View
	// EducationKey forces the education screen to remount when bumped.
	EducationKey int
}

// Result is the outcome of a navigation request.
type Result struct {
	State State
	// Message explains a redirect to the login screen. Empty on success.
	Message string
	// Changed is false when the request was ignored.
	Changed bool
}

// Allowed reports whether class may sit on view v.
func Allowed(class SessionClass, v View) bool {
	switch class {
	case Authenticated:
		return v.Valid()
	case Guest:
		return guestAllowed[v]
	default:
		return anonymousAllowed[v]
	}
}

// Home is the view a class falls back to.
func Home(class SessionClass) View {
	switch class {
	case Authenticated, Guest:
		return ViewDashboard
	default:
		return ViewLanding
	}
}

// Initial returns the view a restored session opens on. A guest holding an
// address resumes on the dashboard.
func Initial(class SessionClass, hasAddress bool) View {
	if class == Guest && hasAddress {
		return ViewDashboard
	}
	return InitialView
}

// Navigate resolves a request to move from st.Current to requested.
func Navigate(st State, requested View, class SessionClass) Result {
	if !requested.Valid() {
		return stay(st, class)
	}

	if class == Guest {
		if requested == ViewLanding {
			return commit(st, ViewDashboard, "")
		}
		if !guestAllowed[requested] {
			if requested == ViewArchive || requested == ViewSettings {
				return redirect(st, ViewLogin, MessageHistoryRequiresAccount)
			}
			return stay(st, class)
		}
	}

	if class == Anonymous && !anonymousAllowed[requested] {
		msg := MessageSignInRequired
		if requested == ViewArchive || requested == ViewSettings {
			msg = MessageHistoryRequiresAccount
		}
		return redirect(st, ViewLogin, msg)
	}

	return commit(st, requested, "")
}

func commit(st State, to View, msg string) Result {
	next := State{Current: to, EducationKey: st.EducationKey}
	if to == ViewEducation && st.Current == ViewEducation {
		next.EducationKey++
	}
	return Result{State: next, Message: msg, Changed: true}
}

func redirect(st State, to View, msg string) Result {
	return Result{
		State:   State{Current: to, EducationKey: st.EducationKey},
		Message: msg,
		Changed: true,
	}
}

func stay(st State, class SessionClass) Result {
	if Allowed(class, st.Current) {
		return Result{State: st}
	}
	return Result{
		State:   State{Current: Home(class), EducationKey: st.EducationKey},
		Changed: true,
	}
}
