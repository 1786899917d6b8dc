package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/metrics"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/repository/specification"
	"civic-bridge-be/internal/repository/unitofwork"
	"civic-bridge-be/pkg/cooldown"
	"civic-bridge-be/pkg/events"
	"civic-bridge-be/pkg/legislators"
	"civic-bridge-be/pkg/letter"
	"civic-bridge-be/pkg/navigation"
	"civic-bridge-be/pkg/store"
)

// ContactDetails describes the letter that reached a representative.
type ContactDetails struct {
	Method  entity.ContactMethod
	Topic   string
	Excerpt string
}

// RepresentativeFinder is the part of the legislator client the services use.
type RepresentativeFinder interface {
	Lookup(ctx context.Context, address string) ([]legislators.Representative, error)
	FindByID(ctx context.Context, id string) (*legislators.Representative, error)
}

type IRepresentativeService interface {
	// Lookup never fails on an unreachable dataset: it answers an empty list.
	Lookup(ctx context.Context, address string) []legislators.Representative
	List(ctx context.Context, caller Caller) (*dto.RepresentativeListResponse, error)
	Annotate(ctx context.Context, caller Caller, reps []legislators.Representative) ([]dto.RepresentativeResponse, error)
	Resolve(ctx context.Context, caller Caller, repID string) (*legislators.Representative, error)
	CheckContactable(ctx context.Context, caller Caller, repID string) error
	RecordContact(ctx context.Context, caller Caller, repID string, details ContactDetails) (*dto.ContactRecordResponse, error)
	AddressOf(ctx context.Context, caller Caller) (string, error)
}

type representativeService struct {
	finder     RepresentativeFinder
	uowFactory unitofwork.RepositoryFactory
	kv         store.KeyValueStore
	publisher  IPublisherService
	logger     logger.ILogger
	guestTTL   time.Duration
	now        func() time.Time
}

func NewRepresentativeService(
	finder RepresentativeFinder,
	uowFactory unitofwork.RepositoryFactory,
	kv store.KeyValueStore,
	publisher IPublisherService,
	log logger.ILogger,
	guestTTL time.Duration,
) IRepresentativeService {
	return &representativeService{
		finder:     finder,
		uowFactory: uowFactory,
		kv:         kv,
		publisher:  publisher,
		logger:     log,
		guestTTL:   guestTTL,
		now:        time.Now,
	}
}

func (s *representativeService) Lookup(ctx context.Context, address string) []legislators.Representative {
	reps, err := s.finder.Lookup(ctx, address)
	if err != nil {
		level := s.logger.Warn
		if errors.Is(err, legislators.ErrNoState) {
			level = s.logger.Info
		}
		level("REPRESENTATIVES", "Lookup returned no representatives", map[string]interface{}{
			"error": err.Error(),
		})
		return []legislators.Representative{}
	}
	return reps
}

// AddressOf is the stored address of a guest or signed-in user.
func (s *representativeService) AddressOf(ctx context.Context, caller Caller) (string, error) {
	switch {
	case caller.IsAuthenticated():
		user, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: caller.UserID})
		if err != nil {
			return "", err
		}
		if user == nil {
			return "", ErrUserNotFound
		}
		if !user.HasAddress() {
			return "", ErrAddressRequired
		}
		return *user.Address, nil
	case caller.GuestID != "":
		address, err := s.kv.Get(ctx, store.GuestKey(caller.GuestID, store.FieldAddress))
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrAddressRequired
		}
		return address, err
	default:
		return "", ErrAddressRequired
	}
}

func (s *representativeService) List(ctx context.Context, caller Caller) (*dto.RepresentativeListResponse, error) {
	address, err := s.AddressOf(ctx, caller)
	if err != nil {
		return nil, err
	}

	reps, err := s.Annotate(ctx, caller, s.Lookup(ctx, address))
	if err != nil {
		return nil, err
	}
	return &dto.RepresentativeListResponse{Address: address, Representatives: reps}, nil
}

// Annotate adds the caller's contact history and availability.
func (s *representativeService) Annotate(ctx context.Context, caller Caller, reps []legislators.Representative) ([]dto.RepresentativeResponse, error) {
	contacts, contacted, err := s.history(ctx, caller, reps)
	if err != nil {
		return nil, err
	}

	now := s.now()
	out := make([]dto.RepresentativeResponse, 0, len(reps))
	for _, rep := range reps {
		out = append(out, toRepresentativeResponse(rep, contacts[rep.ID], caller.IsGuest(), contacted, now))
	}
	return out, nil
}

func (s *representativeService) history(ctx context.Context, caller Caller, reps []legislators.Representative) (map[string]*entity.RepresentativeContact, []string, error) {
	contacts := make(map[string]*entity.RepresentativeContact)

	if caller.IsAuthenticated() && len(reps) > 0 {
		ids := make([]string, len(reps))
		for i, rep := range reps {
			ids[i] = rep.ID
		}
		rows, err := s.uowFactory.NewUnitOfWork(ctx).RepresentativeContactRepository().FindAll(ctx,
			specification.UserOwnedBy{UserID: caller.UserID},
			specification.ByRepresentativeIDs{IDs: ids},
		)
		if err != nil {
			return nil, nil, fmt.Errorf("load contact history: %w", err)
		}
		for _, row := range rows {
			contacts[row.RepresentativeId] = row
		}
		return contacts, nil, nil
	}

	if caller.GuestID != "" {
		contacted, err := s.kv.Members(ctx, store.GuestKey(caller.GuestID, store.FieldContacted))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("load guest contacts: %w", err)
		}
		return contacts, contacted, nil
	}
	return contacts, nil, nil
}

// Resolve finds a representative by id.
func (s *representativeService) Resolve(ctx context.Context, caller Caller, repID string) (*legislators.Representative, error) {
	rep, err := s.finder.FindByID(ctx, repID)
	if err != nil {
		return nil, fmt.Errorf("find representative: %w", err)
	}
	if rep == nil {
		return nil, ErrRepresentativeNotFound
	}
	return rep, nil
}

func (s *representativeService) availability(ctx context.Context, caller Caller, repID string) (cooldown.Availability, *entity.RepresentativeContact, error) {
	var last *time.Time
	var contact *entity.RepresentativeContact
	var contacted []string

	if caller.IsAuthenticated() {
		row, err := s.uowFactory.NewUnitOfWork(ctx).RepresentativeContactRepository().FindOne(ctx,
			specification.UserOwnedBy{UserID: caller.UserID},
			specification.ByRepresentative{ID: repID},
		)
		if err != nil {
			return cooldown.Availability{}, nil, err
		}
		if row != nil {
			contact = row
			last = row.LastContactedAt
		}
	} else if caller.GuestID != "" {
		members, err := s.kv.Members(ctx, store.GuestKey(caller.GuestID, store.FieldContacted))
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return cooldown.Availability{}, nil, err
		}
		contacted = members
	}

	return cooldown.Evaluate(last, repID, caller.IsGuest(), contacted, s.now()), contact, nil
}

func (s *representativeService) CheckContactable(ctx context.Context, caller Caller, repID string) error {
	avail, _, err := s.availability(ctx, caller, repID)
	if err != nil {
		return err
	}
	return unavailableError(avail)
}

func unavailableError(avail cooldown.Availability) error {
	switch avail.Reason {
	case cooldown.ReasonGuestLocked:
		return ErrGuestLocked
	case cooldown.ReasonCooldown:
		return ErrOnCooldown
	}
	return nil
}

// RecordContact marks a successful letter: it stamps the cooldown for a user,
// locks the representative for a guest and raises a LetterSent event.
func (s *representativeService) RecordContact(ctx context.Context, caller Caller, repID string, details ContactDetails) (*dto.ContactRecordResponse, error) {
	if !caller.IsAuthenticated() && !caller.IsGuest() {
		return nil, ErrAddressRequired
	}

	rep, err := s.Resolve(ctx, caller, repID)
	if err != nil {
		return nil, err
	}

	avail, contact, err := s.availability(ctx, caller, repID)
	if err != nil {
		return nil, err
	}
	if err := unavailableError(avail); err != nil {
		return nil, err
	}

	now := s.now()
	var contacted []string
	if caller.IsAuthenticated() {
		contact, err = s.uowFactory.NewUnitOfWork(ctx).RepresentativeContactRepository().RecordContact(ctx, caller.UserID, rep.ID, now)
		if err != nil {
			return nil, fmt.Errorf("record contact: %w", err)
		}
	} else {
		key := store.GuestKey(caller.GuestID, store.FieldContacted)
		if err := s.kv.AddMember(ctx, key, rep.ID, s.guestTTL); err != nil {
			return nil, fmt.Errorf("record guest contact: %w", err)
		}
		contacted = []string{rep.ID}
	}

	event := events.LetterSent{
		GuestID:          caller.GuestID,
		RepresentativeID: rep.ID,
		RepName:          rep.Name,
		RepRole:          rep.Role,
		RepAvatar:        rep.ImageURL,
		Topic:            details.Topic,
		Excerpt:          details.Excerpt,
		Method:           string(details.Method),
		SentAt:           now,
	}
	if caller.IsAuthenticated() {
		event.UserID = caller.UserID.String()
		event.GuestID = ""
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Error("REPRESENTATIVES", "Failed to publish letter sent event", map[string]interface{}{
				"representative_id": rep.ID,
				"error":             err.Error(),
			})
		}
	}

	metrics.RecordContact(string(details.Method), string(caller.Class))
	s.logger.Info("REPRESENTATIVES", "Contact recorded", map[string]interface{}{
		"representative_id": rep.ID,
		"method":            details.Method,
		"session_class":     caller.Class,
	})

	return &dto.ContactRecordResponse{
		ReferenceId:    fmt.Sprintf("CB-%d", rand.Intn(1000000)),
		Method:         string(details.Method),
		Representative: toRepresentativeResponse(*rep, contact, caller.IsGuest(), contacted, now),
		MailingAddress: rep.MailingAddress,
		AddressLines:   letter.SplitAddress(rep.MailingAddress),
		View:           navigation.ViewSuccess.String(),
	}, nil
}

func toRepresentativeResponse(rep legislators.Representative, contact *entity.RepresentativeContact, isGuest bool, contacted []string, now time.Time) dto.RepresentativeResponse {
	res := dto.RepresentativeResponse{
		Id:             rep.ID,
		Name:           rep.Name,
		Role:           rep.Role,
		Level:          rep.Level,
		Party:          rep.Party,
		ImageURL:       rep.ImageURL,
		ContactURL:     rep.ContactURL,
		MailingAddress: rep.MailingAddress,
	}

	var last *time.Time
	if contact != nil {
		last = contact.LastContactedAt
		res.LastContacted = contact.LastContactedAt
		res.LifetimeContactCount = contact.LifetimeCount
	}

	avail := cooldown.Evaluate(last, rep.ID, isGuest, contacted, now)
	res.Contactable = avail.Contactable
	res.UnavailableCause = string(avail.Reason)
	if avail.Status.OnCooldown {
		res.AvailableAt = avail.Status.AvailableAt
		res.CooldownLeft = cooldown.FormatRemaining(avail.Status.Remaining)
	}
	return res
}
