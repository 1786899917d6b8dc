package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/pkg/navigation"
	"civic-bridge-be/pkg/store"

	"github.com/google/uuid"
)

type IGuestService interface {
	// Start binds an address to a guest identity. guestID may be empty or
	// invalid, in which case a new identity is issued.
	Start(ctx context.Context, guestID string, req *dto.StartGuestSessionRequest) (*dto.GuestSessionResponse, error)
	// End forgets the address. The contacted set and tour flag stay with the
	// identity until it expires.
	End(ctx context.Context, caller Caller) error
	DismissTour(ctx context.Context, caller Caller, req *dto.DismissTourRequest) error
}

type guestService struct {
	kv              store.KeyValueStore
	representatives IRepresentativeService
	logger          logger.ILogger
	ttl             time.Duration
}

func NewGuestService(kv store.KeyValueStore, representatives IRepresentativeService, log logger.ILogger, ttl time.Duration) IGuestService {
	return &guestService{
		kv:              kv,
		representatives: representatives,
		logger:          log,
		ttl:             ttl,
	}
}

func (s *guestService) Start(ctx context.Context, guestID string, req *dto.StartGuestSessionRequest) (*dto.GuestSessionResponse, error) {
	address := strings.TrimSpace(req.Address)
	if address == "" {
		return nil, ErrAddressRequired
	}
	if _, err := uuid.Parse(guestID); err != nil {
		guestID = uuid.NewString()
	}

	reps := s.representatives.Lookup(ctx, address)
	if len(reps) == 0 {
		return nil, ErrNoRepresentatives
	}

	if err := s.kv.Set(ctx, store.GuestKey(guestID, store.FieldAddress), address, s.ttl); err != nil {
		return nil, fmt.Errorf("store guest address: %w", err)
	}

	showTour := false
	if _, err := s.kv.Get(ctx, store.GuestKey(guestID, store.FieldTourSeen)); errors.Is(err, store.ErrNotFound) {
		showTour = true
	} else if err != nil {
		return nil, fmt.Errorf("read tour flag: %w", err)
	}

	caller := Caller{Class: navigation.Guest, GuestID: guestID}
	annotated, err := s.representatives.Annotate(ctx, caller, reps)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GUEST", "Guest session started", map[string]interface{}{
		"guest_id":        guestID,
		"representatives": len(reps),
	})

	return &dto.GuestSessionResponse{
		GuestId:         guestID,
		Address:         address,
		ShowTour:        showTour,
		View:            navigation.ViewDashboard.String(),
		Representatives: annotated,
	}, nil
}

func (s *guestService) End(ctx context.Context, caller Caller) error {
	if caller.GuestID == "" {
		return nil
	}
	if err := s.kv.Delete(ctx, store.GuestKey(caller.GuestID, store.FieldAddress)); err != nil {
		return fmt.Errorf("clear guest address: %w", err)
	}
	s.logger.Info("GUEST", "Guest session ended", map[string]interface{}{"guest_id": caller.GuestID})
	return nil
}

func (s *guestService) DismissTour(ctx context.Context, caller Caller, req *dto.DismissTourRequest) error {
	if !req.DontShowAgain || caller.GuestID == "" {
		return nil
	}
	return s.kv.Set(ctx, store.GuestKey(caller.GuestID, store.FieldTourSeen), "true", s.ttl)
}
