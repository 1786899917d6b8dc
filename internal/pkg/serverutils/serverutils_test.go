package serverutils

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"civic-bridge-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "test-secret"

func signed(t *testing.T, userID string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    "user",
		"exp":     exp.Unix(),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, body io.Reader) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(body).Decode(&out))
	return out
}

func sessionApp(kv store.KeyValueStore) *fiber.App {
	app := fiber.New()
	app.Use(SessionMiddleware(secret, kv))
	app.Get("/whoami", func(ctx *fiber.Ctx) error {
		s := CurrentSession(ctx)
		return ctx.JSON(fiber.Map{"class": s.Class, "guest_id": s.GuestID, "user_id": s.UserID})
	})
	return app
}

func TestSessionMiddlewareClassifies(t *testing.T) {
	kv := store.NewMemoryStore()
	guestWithAddress := uuid.NewString()
	guestWithout := uuid.NewString()
	require.NoError(t, kv.Set(context.Background(), store.GuestKey(guestWithAddress, store.FieldAddress), "1 Main St, Austin, TX 78701", 0))

	userID := uuid.NewString()
	app := sessionApp(kv)

	tests := []struct {
		name      string
		auth      string
		guest     string
		wantClass string
		wantGuest string
	}{
		{"nothing", "", "", "anonymous", ""},
		{"valid token", "Bearer " + signed(t, userID, time.Now().Add(time.Hour)), guestWithAddress, "authenticated", ""},
		{"expired token falls through", "Bearer " + signed(t, userID, time.Now().Add(-time.Hour)), "", "anonymous", ""},
		{"guest with address", "", guestWithAddress, "guest", guestWithAddress},
		{"guest id without address", "", guestWithout, "anonymous", guestWithout},
		{"malformed guest id", "", "not-a-uuid", "anonymous", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/whoami", nil)
			if tt.auth != "" {
				req.Header.Set("Authorization", tt.auth)
			}
			if tt.guest != "" {
				req.Header.Set(GuestHeader, tt.guest)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			body := decode(t, resp.Body)
			assert.Equal(t, tt.wantClass, body["class"])
			assert.Equal(t, tt.wantGuest, body["guest_id"])
		})
	}
}

func TestRequireSession(t *testing.T) {
	app := fiber.New()
	app.Use(SessionMiddleware(secret, store.NewMemoryStore()))
	app.Get("/members", RequireSession(ClassAuthenticated), func(ctx *fiber.Ctx) error {
		return ctx.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/members", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	req := httptest.NewRequest("GET", "/members", nil)
	req.Header.Set("Authorization", "Bearer "+signed(t, uuid.NewString(), time.Now().Add(time.Hour)))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestParseToken(t *testing.T) {
	userID, err := ParseToken(secret, signed(t, "abc", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, "abc", userID)

	_, err = ParseToken(secret, signed(t, "abc", time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseToken("other-secret", signed(t, "abc", time.Now().Add(time.Hour)))
	assert.ErrorIs(t, err, ErrInvalidToken)

	token, ok := BearerToken("Bearer xyz")
	assert.True(t, ok)
	assert.Equal(t, "xyz", token)

	_, ok = BearerToken("Basic xyz")
	assert.False(t, ok)
	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
}

func TestErrorHandlerMiddleware(t *testing.T) {
	type req struct {
		Email   string `validate:"required,email"`
		Message string `validate:"required,min=5"`
	}

	app := fiber.New()
	app.Use(ErrorHandlerMiddleware())
	app.Get("/validation", func(ctx *fiber.Ctx) error {
		return ValidateRequest(req{Email: "nope", Message: "hi"})
	})
	app.Get("/fiber", func(ctx *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "short and stout")
	})
	app.Get("/boom", func(ctx *fiber.Ctx) error {
		return errors.New("db password is hunter2")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/validation", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	body := decode(t, resp.Body)
	assert.Equal(t, false, body["success"])
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, "must be a valid email", errs["email"])
	assert.Equal(t, "must be at least 5 characters", errs["message"])

	resp, err = app.Test(httptest.NewRequest("GET", "/fiber", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)
	assert.Equal(t, "short and stout", decode(t, resp.Body)["message"])

	resp, err = app.Test(httptest.NewRequest("GET", "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Internal server error", decode(t, resp.Body)["message"])
}

func TestJSONName(t *testing.T) {
	assert.Equal(t, "rep_id", jsonName("RepId"))
	assert.Equal(t, "email", jsonName("Email"))
}
