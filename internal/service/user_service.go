package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/repository/specification"
	"civic-bridge-be/internal/repository/unitofwork"
)

type IUserService interface {
	GetProfile(ctx context.Context, caller Caller) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, caller Caller, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	// UpdateAddress stores the mailing address and marks the profile verified.
	UpdateAddress(ctx context.Context, caller Caller, req *dto.UpdateAddressRequest) (*dto.UserProfileResponse, error)
	UpdateSubscription(ctx context.Context, caller Caller, req *dto.UpdateSubscriptionRequest) (*dto.UserProfileResponse, error)
}

type userService struct {
	uowFactory      unitofwork.RepositoryFactory
	representatives IRepresentativeService
	logger          logger.ILogger
}

func NewUserService(uowFactory unitofwork.RepositoryFactory, representatives IRepresentativeService, log logger.ILogger) IUserService {
	return &userService{
		uowFactory:      uowFactory,
		representatives: representatives,
		logger:          log,
	}
}

func (s *userService) GetProfile(ctx context.Context, caller Caller) (*dto.UserProfileResponse, error) {
	user, err := s.find(ctx, caller)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, caller Caller, req *dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := s.find(ctx, caller)
	if err != nil {
		return nil, err
	}

	user.FullName = strings.TrimSpace(req.Name)
	if req.Avatar != "" {
		avatar := req.Avatar
		user.AvatarURL = &avatar
	}
	user.UpdatedAt = time.Now()

	if err := uow.UserRepository().Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return toProfileResponse(user), nil
}

func (s *userService) UpdateAddress(ctx context.Context, caller Caller, req *dto.UpdateAddressRequest) (*dto.UserProfileResponse, error) {
	address := strings.TrimSpace(req.Address)
	if len(s.representatives.Lookup(ctx, address)) == 0 {
		return nil, ErrNoRepresentatives
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdateAddress(ctx, caller.UserID, address); err != nil {
		return nil, fmt.Errorf("update address: %w", err)
	}

	s.logger.Info("USER", "Address updated", map[string]interface{}{"user_id": caller.UserID})
	return s.GetProfile(ctx, caller)
}

func (s *userService) UpdateSubscription(ctx context.Context, caller Caller, req *dto.UpdateSubscriptionRequest) (*dto.UserProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.UserRepository().UpdateSubscription(ctx, caller.UserID, req.IsPro); err != nil {
		return nil, fmt.Errorf("update subscription: %w", err)
	}
	return s.GetProfile(ctx, caller)
}

func (s *userService) find(ctx context.Context, caller Caller) (*entity.User, error) {
	if !caller.IsAuthenticated() {
		return nil, ErrUserNotFound
	}
	user, err := s.uowFactory.NewUnitOfWork(ctx).UserRepository().FindOne(ctx, specification.ByID{ID: caller.UserID})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func toProfileResponse(user *entity.User) *dto.UserProfileResponse {
	res := &dto.UserProfileResponse{
		Id:         user.Id,
		Name:       user.FullName,
		Email:      user.Email,
		IsVerified: user.IsVerified,
		IsPro:      user.IsPro,
		CreatedAt:  user.CreatedAt,
	}
	if user.AvatarURL != nil {
		res.Avatar = *user.AvatarURL
	}
	if user.Address != nil {
		res.Address = *user.Address
	}
	return res
}
