package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/model"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/repository/unitofwork"
	"civic-bridge-be/pkg/database"
	"civic-bridge-be/pkg/events"
	"civic-bridge-be/pkg/legislators"
	"civic-bridge-be/pkg/llm"
	"civic-bridge-be/pkg/navigation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testAddress = "1600 Amphitheatre Pkwy, Mountain View, CA 94043"

var (
	senator = legislators.Representative{
		ID:             "fed_P000145",
		Name:           "Alex Padilla",
		Role:           legislators.RoleSenator,
		Level:          legislators.LevelFederal,
		Party:          legislators.PartyDemocrat,
		ImageURL:       "https://theunitedstates.io/images/congress/225x275/P000145.jpg",
		ContactURL:     "https://www.padilla.senate.gov/contact/",
		MailingAddress: "331 Hart Senate Office Building Washington DC 20510",
	}
	houseMember = legislators.Representative{
		ID:             "fed_L000397",
		Name:           "Zoe Lofgren",
		Role:           legislators.RoleRepresentative,
		Level:          legislators.LevelFederal,
		Party:          legislators.PartyDemocrat,
		MailingAddress: legislators.DefaultMailingAddress,
	}
)

// stubFinder answers every California address with the same delegation.
type stubFinder struct {
	reps []legislators.Representative
	err  error
}

func (f *stubFinder) Lookup(ctx context.Context, address string) ([]legislators.Representative, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !strings.Contains(address, " CA ") {
		return nil, legislators.ErrNoState
	}
	return f.reps, nil
}

func (f *stubFinder) FindByID(ctx context.Context, id string) (*legislators.Representative, error) {
	for _, rep := range f.reps {
		if rep.ID == id {
			r := rep
			return &r, nil
		}
	}
	return nil, nil
}

func newStubFinder() *stubFinder {
	return &stubFinder{reps: []legislators.Representative{senator, houseMember}}
}

// stubLLM returns canned text and remembers what it was asked.
type stubLLM struct {
	mu        sync.Mutex
	chatReply string
	chatErr   error
	genReply  string
	genErr    error
	chats     []llm.Message
	prompts   []string
	genOpts   []*llm.Options
}

func (m *stubLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chats = append(m.chats, history...)
	return m.chatReply, m.chatErr
}

func (m *stubLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prompts = append(m.prompts, prompt)
	m.genOpts = append(m.genOpts, llm.Apply(llm.Options{}, options...))
	return m.genReply, m.genErr
}

var errModelDown = errors.New("model unavailable")

// recordingPublisher keeps published events in memory.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.Event
}

func (p *recordingPublisher) Publish(ctx context.Context, event events.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) letters() []events.LetterSent {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []events.LetterSent
	for _, e := range p.events {
		if l, ok := e.(events.LetterSent); ok {
			out = append(out, l)
		}
	}
	return out
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.NewSQLiteDB(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.Schema()...))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, uowFactory unitofwork.RepositoryFactory, name string, address string) *entity.User {
	t.Helper()
	ctx := context.Background()
	now := time.Now()
	user := &entity.User{
		Id:        uuid.New(),
		Email:     strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		FullName:  name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if address != "" {
		user.Address = &address
		user.IsVerified = true
	}
	require.NoError(t, uowFactory.NewUnitOfWork(ctx).UserRepository().Create(ctx, user))
	return user
}

func memberCaller(user *entity.User) Caller {
	return Caller{Class: navigation.Authenticated, UserID: user.Id}
}

func guestCaller(id string) Caller {
	return Caller{Class: navigation.Guest, GuestID: id}
}

func testLogger() logger.ILogger {
	return logger.NewNopLogger()
}

// fixedClock returns a settable clock for services with a now field.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time { return c.t }

func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }
