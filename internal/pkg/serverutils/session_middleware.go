package serverutils

import (
	"errors"

	"civic-bridge-be/pkg/navigation"
	"civic-bridge-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	GuestHeader = "X-Guest-Session"

	LocalUserID       = "user_id"
	LocalGuestID      = "guest_id"
	LocalSessionClass = "session_class"

	ClassAnonymous     = navigation.Anonymous
	ClassGuest         = navigation.Guest
	ClassAuthenticated = navigation.Authenticated
)

// Session is who is calling, as classified by SessionMiddleware.
type Session struct {
	Class   navigation.SessionClass
	UserID  uuid.UUID
	GuestID string
}

func (s Session) IsGuest() bool {
	return s.Class == ClassGuest
}

func (s Session) IsAuthenticated() bool {
	return s.Class == ClassAuthenticated
}

// SessionMiddleware classifies every request. A valid bearer token makes the
// caller authenticated; otherwise a guest id with a stored address makes them
// a guest; everyone else is anonymous. A guest id without an address is kept
// in Locals so a guest session can be started under it.
func SessionMiddleware(secret string, kv store.KeyValueStore) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals(LocalSessionClass, ClassAnonymous)

		if tokenStr, ok := BearerToken(ctx.Get("Authorization")); ok {
			if userID, err := ParseToken(secret, tokenStr); err == nil {
				ctx.Locals(LocalUserID, userID)
				ctx.Locals(LocalSessionClass, ClassAuthenticated)
				return ctx.Next()
			}
		}

		guestID := ctx.Get(GuestHeader)
		if _, err := uuid.Parse(guestID); err != nil {
			return ctx.Next()
		}
		ctx.Locals(LocalGuestID, guestID)

		address, err := kv.Get(ctx.UserContext(), store.GuestKey(guestID, store.FieldAddress))
		switch {
		case err == nil && address != "":
			ctx.Locals(LocalSessionClass, ClassGuest)
		case err != nil && !errors.Is(err, store.ErrNotFound):
			return err
		}
		return ctx.Next()
	}
}

// CurrentSession reads what SessionMiddleware stored.
func CurrentSession(ctx *fiber.Ctx) Session {
	s := Session{Class: ClassAnonymous}
	if class, ok := ctx.Locals(LocalSessionClass).(navigation.SessionClass); ok {
		s.Class = class
	}
	if raw, ok := ctx.Locals(LocalUserID).(string); ok {
		if id, err := uuid.Parse(raw); err == nil {
			s.UserID = id
		}
	}
	if raw, ok := ctx.Locals(LocalGuestID).(string); ok {
		s.GuestID = raw
	}
	return s
}

// RequireSession lets through only the given classes.
func RequireSession(classes ...navigation.SessionClass) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		current := CurrentSession(ctx).Class
		for _, c := range classes {
			if c == current {
				return ctx.Next()
			}
		}
		if current == ClassAnonymous {
			return ctx.Status(fiber.StatusUnauthorized).
				JSON(ErrorResponse(fiber.StatusUnauthorized, navigation.MessageSignInRequired))
		}
		return ctx.Status(fiber.StatusForbidden).
			JSON(ErrorResponse(fiber.StatusForbidden, "Please sign in to continue."))
	}
}
