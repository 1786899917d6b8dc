package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"civic-bridge-be/internal/bootstrap"
	"civic-bridge-be/internal/config"
	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/model"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/pkg/mailer"
	"civic-bridge-be/internal/pkg/serverutils"
	"civic-bridge-be/pkg/database"
	"civic-bridge-be/pkg/legislators"
	"civic-bridge-be/pkg/llm"
	"civic-bridge-be/pkg/store"
	"civic-bridge-be/pkg/strategist"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const (
	testSecret  = "server-test-secret"
	testAddress = "1600 Amphitheatre Pkwy, Mountain View, CA 94043"
	mailingTo   = "331 Hart Senate Office Building Washington DC 20510"
)

var padilla = legislators.Representative{
	ID:             "fed_P000145",
	Name:           "Alex Padilla",
	Role:           legislators.RoleSenator,
	Level:          legislators.LevelFederal,
	Party:          legislators.PartyDemocrat,
	ContactURL:     "https://www.padilla.senate.gov/contact/",
	MailingAddress: mailingTo,
}

type californiaFinder struct{}

func (californiaFinder) Lookup(ctx context.Context, address string) ([]legislators.Representative, error) {
	if !strings.Contains(address, " CA ") {
		return nil, legislators.ErrNoState
	}
	return []legislators.Representative{padilla}, nil
}

func (californiaFinder) FindByID(ctx context.Context, id string) (*legislators.Representative, error) {
	if id != padilla.ID {
		return nil, nil
	}
	rep := padilla
	return &rep, nil
}

type cannedModel struct{}

func (cannedModel) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return `{"response": "What stop do you use?", "suggestions": ["Main St", "Elm St"]}`, nil
}

func (cannedModel) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "Dear Senator Padilla,\n\nPlease fund the 22 bus.\n\nSincerely,\nSam Rivera", nil
}

type discardMailer struct{}

func (discardMailer) SendContactMessage(msg mailer.ContactMessage) error { return nil }

func (discardMailer) SendWaitlistConfirmation(toEmail, name string) error { return nil }

type testServer struct {
	app *fiber.App
	db  *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.Schema()...))

	cfg := &config.Config{
		App: config.AppConfig{
			ClientURL:          "http://localhost:5173",
			CorsAllowedOrigins: "http://localhost:5173",
			DraftRateLimit:     100,
		},
		Civic: config.CivicConfig{
			GuestTTL:          time.Hour,
			DraftIdleTTL:      time.Hour,
			MaxAttachmentSize: 1024,
			WebformFallback:   "https://www.usa.gov/elected-officials",
		},
		Ai:   config.AIConfig{LLMProvider: "gemini", Timeout: time.Second},
		Auth: config.AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour},
	}

	container, err := bootstrap.NewContainerWith(db, cfg, bootstrap.Overrides{
		LLM:        cannedModel{},
		Finder:     californiaFinder{},
		Mailer:     discardMailer{},
		GuestStore: store.NewMemoryStore(),
		Logger:     logger.NewNopLogger(),
		FeedLogger: logger.NewNopLogger(),
	})
	require.NoError(t, err)
	t.Cleanup(container.Close)

	return &testServer{app: New(cfg, container).GetApp(), db: db}
}

type call struct {
	method string
	path   string
	body   interface{}
	guest  string
	token  string
}

func (s *testServer) do(t *testing.T, c call) *http.Response {
	t.Helper()
	var body io.Reader
	if c.body != nil {
		raw, err := json.Marshal(c.body)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(c.method, c.path, body)
	req.Header.Set("Content-Type", "application/json")
	if c.guest != "" {
		req.Header.Set(serverutils.GuestHeader, c.guest)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) serverutils.BaseResponse[T] {
	t.Helper()
	defer resp.Body.Close()
	var out serverutils.BaseResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func TestGuestWritesAndDownloadsLetter(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, call{method: "POST", path: "/api/guest/session", body: dto.StartGuestSessionRequest{Address: testAddress}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	guestID := resp.Header.Get(serverutils.GuestHeader)
	started := decode[dto.GuestSessionResponse](t, resp)
	assert.Equal(t, guestID, started.Data.GuestId)
	assert.Equal(t, "DASHBOARD", started.Data.View)
	require.Len(t, started.Data.Representatives, 1)

	resp = s.do(t, call{method: "GET", path: "/api/representatives", guest: guestID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[dto.RepresentativeListResponse](t, resp)
	assert.Equal(t, testAddress, list.Data.Address)
	assert.True(t, list.Data.Representatives[0].Contactable)

	resp = s.do(t, call{method: "POST", path: "/api/drafting/sessions", guest: guestID, body: dto.StartDraftRequest{RepresentativeId: padilla.ID}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	session := decode[dto.DraftSessionResponse](t, resp).Data
	assert.True(t, session.CollectingName)
	base := "/api/drafting/sessions/" + session.Id

	for _, text := range []string{"Sam Rivera", "The 22 bus never comes on time.", strategist.GenerateDraftChip} {
		resp = s.do(t, call{method: "POST", path: base + "/messages", guest: guestID, body: dto.SendMessageRequest{Text: text}})
		require.Equal(t, fiber.StatusOK, resp.StatusCode, text)
		resp.Body.Close()
	}

	resp = s.do(t, call{method: "GET", path: base + "/letter.pdf", guest: guestID})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "CivicBridge_Letter_to_Alex_Padilla.pdf")
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	resp = s.do(t, call{method: "POST", path: base + "/complete", guest: guestID})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	done := decode[dto.ContactRecordResponse](t, resp).Data
	assert.Equal(t, mailingTo, done.MailingAddress)
	assert.Equal(t, "SUCCESS", done.View)

	resp = s.do(t, call{method: "POST", path: base + "/complete", guest: guestID})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = s.do(t, call{method: "POST", path: "/api/drafting/sessions", guest: guestID, body: dto.StartDraftRequest{RepresentativeId: padilla.ID}})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "UPGRADE", decode[map[string]string](t, resp).Data["view"])
}

func TestGuestCannotUseWebform(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, call{method: "POST", path: "/api/guest/session", body: dto.StartGuestSessionRequest{Address: testAddress}})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	guestID := resp.Header.Get(serverutils.GuestHeader)

	resp = s.do(t, call{method: "POST", path: "/api/drafting/sessions", guest: guestID, body: dto.StartDraftRequest{RepresentativeId: padilla.ID}})
	session := decode[dto.DraftSessionResponse](t, resp).Data

	resp = s.do(t, call{method: "POST", path: "/api/drafting/sessions/" + session.Id + "/webform", guest: guestID})
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "UPGRADE", decode[map[string]string](t, resp).Data["view"])
}

func TestAnonymousAccess(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, call{method: "GET", path: "/api/user/profile"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, call{method: "GET", path: "/api/representatives"})
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, call{method: "GET", path: "/api/navigation/initial"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "LANDING", decode[dto.NavigationResponse](t, resp).Data.View)

	resp = s.do(t, call{method: "GET", path: "/healthz"})
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestGuestStartRejectsAddressWithoutRepresentatives(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, call{method: "POST", path: "/api/guest/session", body: dto.StartGuestSessionRequest{Address: "10 Downing Street, London"}})
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)

	resp = s.do(t, call{method: "POST", path: "/api/guest/session", body: map[string]string{}})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestMemberProfileAndHistory(t *testing.T) {
	s := newTestServer(t)
	token := s.signIn(t)

	resp := s.do(t, call{method: "PUT", path: "/api/user/address", token: token, body: dto.UpdateAddressRequest{Address: testAddress}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	profile := decode[dto.UserProfileResponse](t, resp).Data
	assert.True(t, profile.IsVerified)

	resp = s.do(t, call{method: "GET", path: "/api/activity/logs?page=1&page_size=10", token: token})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Zero(t, decode[dto.ActivityPageResponse](t, resp).Data.Total)

	resp = s.do(t, call{method: "POST", path: "/api/navigation", token: token, body: dto.NavigateRequest{Current: "DASHBOARD", Requested: "ARCHIVE"}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ARCHIVE", decode[dto.NavigationResponse](t, resp).Data.View)
}

// signIn creates a user row and returns a token for it.
func (s *testServer) signIn(t *testing.T) string {
	t.Helper()
	userID := uuid.New()
	now := time.Now()
	require.NoError(t, s.db.Create(&model.User{Id: userID, Email: "sam@example.com", FullName: "Sam Rivera", CreatedAt: now, UpdatedAt: now}).Error)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}
