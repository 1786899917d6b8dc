package service

import (
	"context"
	"fmt"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/metrics"
	"civic-bridge-be/pkg/navigation"
)

type INavigationService interface {
	Initial(ctx context.Context, caller Caller) *dto.NavigationResponse
	Navigate(ctx context.Context, caller Caller, req *dto.NavigateRequest) (*dto.NavigationResponse, error)
}

type navigationService struct{}

func NewNavigationService() INavigationService {
	return &navigationService{}
}

func (s *navigationService) Initial(ctx context.Context, caller Caller) *dto.NavigationResponse {
	// A guest class is only assigned when an address is stored.
	view := navigation.Initial(caller.Class, caller.IsGuest())
	return toNavigationResponse(navigation.Result{State: navigation.State{Current: view}}, caller.Class)
}

func (s *navigationService) Navigate(ctx context.Context, caller Caller, req *dto.NavigateRequest) (*dto.NavigationResponse, error) {
	current, err := navigation.ParseView(req.Current)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidView, req.Current)
	}
	requested, err := navigation.ParseView(req.Requested)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidView, req.Requested)
	}

	result := navigation.Navigate(
		navigation.State{Current: current, EducationKey: req.EducationKey},
		requested,
		caller.Class,
	)
	if result.Changed && result.State.Current != requested {
		metrics.RecordRedirect(result.State.Current.String())
	}
	return toNavigationResponse(result, caller.Class), nil
}

func toNavigationResponse(r navigation.Result, class navigation.SessionClass) *dto.NavigationResponse {
	v := r.State.Current
	return &dto.NavigationResponse{
		View:         v.String(),
		EducationKey: r.State.EducationKey,
		Message:      r.Message,
		Changed:      r.Changed,
		SessionClass: string(class),
		ShowsHeader:  navigation.ShowsHeader(v),
		ShowsFooter:  navigation.ShowsFooter(v),
		HasSidebar:   navigation.HasSidebar(v),
	}
}
