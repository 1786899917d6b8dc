package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"civic-bridge-be/internal/config"
	"civic-bridge-be/internal/dto"
	"civic-bridge-be/internal/entity"
	"civic-bridge-be/internal/pkg/logger"
	"civic-bridge-be/internal/repository/specification"
	"civic-bridge-be/internal/repository/unitofwork"
	"civic-bridge-be/pkg/events"
	"civic-bridge-be/pkg/navigation"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	providerGoogle      = "google"
	googleUserInfoURL   = "https://www.googleapis.com/oauth2/v2/userinfo"
	oauthStateByteCount = 16
)

// GoogleUser is the profile returned by Google's userinfo endpoint.
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

type IOAuthService interface {
	GetLoginURL(provider string) (string, string, error)
	HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error)
	// SignIn creates the profile on first sign-in and issues an access token.
	SignIn(ctx context.Context, profile GoogleUser) (*dto.LoginResponse, error)
}

type oauthService struct {
	uowFactory  unitofwork.RepositoryFactory
	googleConf  *oauth2.Config
	userInfoURL string
	jwtSecret   string
	tokenTTL    time.Duration
	publisher   IPublisherService
	logger      logger.ILogger
}

func NewOAuthService(uowFactory unitofwork.RepositoryFactory, auth config.AuthConfig, publisher IPublisherService, log logger.ILogger) IOAuthService {
	conf := &oauth2.Config{
		ClientID:     auth.GoogleClientID,
		ClientSecret: auth.GoogleClientSecret,
		RedirectURL:  auth.GoogleRedirectURL,
		Scopes: []string{
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}

	return &oauthService{
		uowFactory:  uowFactory,
		googleConf:  conf,
		userInfoURL: googleUserInfoURL,
		jwtSecret:   auth.JWTSecret,
		tokenTTL:    auth.TokenTTL,
		publisher:   publisher,
		logger:      log,
	}
}

// GetLoginURL returns the consent URL and the state to verify on callback.
func (s *oauthService) GetLoginURL(provider string) (string, string, error) {
	if provider != providerGoogle {
		return "", "", ErrUnsupportedProvider
	}

	b := make([]byte, oauthStateByteCount)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate oauth state: %w", err)
	}
	state := base64.URLEncoding.EncodeToString(b)

	return s.googleConf.AuthCodeURL(state), state, nil
}

func (s *oauthService) HandleCallback(ctx context.Context, provider string, code string) (*dto.LoginResponse, error) {
	if provider != providerGoogle {
		return nil, ErrUnsupportedProvider
	}

	token, err := s.googleConf.Exchange(ctx, code)
	if err != nil {
		s.logger.Warn("OAUTH", "Code exchange failed", map[string]interface{}{"error": err.Error()})
		return nil, fmt.Errorf("code exchange failed: %w", err)
	}

	resp, err := s.googleConf.Client(ctx, token).Get(s.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed getting user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("user info returned status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed reading response: %w", err)
	}

	var googleUser GoogleUser
	if err := json.Unmarshal(content, &googleUser); err != nil {
		return nil, fmt.Errorf("failed to parse user info: %w", err)
	}

	return s.SignIn(ctx, googleUser)
}

func (s *oauthService) SignIn(ctx context.Context, profile GoogleUser) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(profile.Email))
	if email == "" {
		return nil, fmt.Errorf("google profile has no email")
	}

	var user *entity.User
	isNewUser := false
	err := unitofwork.Transaction(ctx, s.uowFactory, func(uow unitofwork.UnitOfWork) error {
		existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: email})
		if err != nil {
			return err
		}
		user = existing

		if user == nil {
			isNewUser = true
			now := time.Now()
			user = &entity.User{
				Id:        uuid.New(),
				Email:     email,
				FullName:  profile.Name,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if profile.Picture != "" {
				avatar := profile.Picture
				user.AvatarURL = &avatar
			}
			if err := uow.UserRepository().Create(ctx, user); err != nil {
				return fmt.Errorf("create user: %w", err)
			}
		}

		if profile.ID == "" {
			return nil
		}
		linked, err := uow.UserRepository().FindUserProvider(ctx, providerGoogle, profile.ID)
		if err != nil || linked != nil {
			return err
		}
		if err := uow.UserRepository().SaveUserProvider(ctx, &entity.UserProvider{
			Id:             uuid.New(),
			UserId:         user.Id,
			ProviderName:   providerGoogle,
			ProviderUserId: profile.ID,
			AvatarURL:      profile.Picture,
			CreatedAt:      time.Now(),
		}); err != nil {
			return fmt.Errorf("save provider link: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	signedToken, err := s.issueToken(user.Id)
	if err != nil {
		return nil, err
	}

	if s.publisher != nil {
		event := events.BaseEvent{
			Type: events.TypeUserSignedIn,
			Data: map[string]interface{}{
				"user_id":     user.Id.String(),
				"is_new_user": isNewUser,
			},
			OccurredAt: time.Now(),
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			s.logger.Warn("OAUTH", "Failed to publish sign-in event", map[string]interface{}{"error": err.Error()})
		}
	}

	view := navigation.ViewDashboard
	if !user.HasAddress() {
		view = navigation.ViewOnboarding
	}

	s.logger.Info("OAUTH", "User signed in", map[string]interface{}{
		"user_id":     user.Id,
		"is_new_user": isNewUser,
	})

	return &dto.LoginResponse{
		AccessToken: signedToken,
		IsNewUser:   isNewUser,
		User:        *toProfileResponse(user),
		View:        view.String(),
	}, nil
}

func (s *oauthService) issueToken(userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"role":    "user",
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
