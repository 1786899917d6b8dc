// Package cooldown decides whether a representative may be contacted again.
package cooldown

import (
	"fmt"
	"time"
)

// Window is how long an authenticated user waits between letters to the same
// representative.
const Window = 24 * time.Hour

// Reason explains why a representative is not contactable.
type Reason string

const (
	ReasonNone        Reason = ""
	ReasonCooldown    Reason = "cooldown"
	ReasonGuestLocked Reason = "guest_locked"
)

// Contactable reports whether the window since last has elapsed. A
// representative never contacted is always contactable.
func Contactable(last *time.Time, now time.Time) bool {
	if last == nil {
		return true
	}
	return now.Sub(*last) >= Window
}

// Status is the derived cooldown state of one representative.
type Status struct {
	OnCooldown  bool
	AvailableAt *time.Time
	Remaining   time.Duration
}

// StatusAt computes the cooldown status at now.
func StatusAt(last *time.Time, now time.Time) Status {
	if Contactable(last, now) {
		return Status{}
	}
	available := last.Add(Window)
	return Status{
		OnCooldown:  true,
		AvailableAt: &available,
		Remaining:   available.Sub(now),
	}
}

// FormatRemaining renders d as "Hh Mm", truncating to whole minutes.
func FormatRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm", h, m)
}

// GuestLocked reports whether a guest already wrote to repID. The lock does
// not expire.
func GuestLocked(contacted []string, repID string) bool {
	for _, id := range contacted {
		if id == repID {
			return true
		}
	}
	return false
}

// Availability combines the time-based cooldown with the guest lock.
type Availability struct {
	Contactable bool
	Reason      Reason
	Status      Status
}

// Evaluate decides availability for one representative. Guests are subject to
// the permanent lock on top of the cooldown.
func Evaluate(last *time.Time, repID string, isGuest bool, contacted []string, now time.Time) Availability {
	status := StatusAt(last, now)
	if isGuest && GuestLocked(contacted, repID) {
		return Availability{Contactable: false, Reason: ReasonGuestLocked, Status: status}
	}
	if status.OnCooldown {
		return Availability{Contactable: false, Reason: ReasonCooldown, Status: status}
	}
	return Availability{Contactable: true, Status: status}
}
