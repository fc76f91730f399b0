package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"anoa.com/yamdbreview/internal/config"
	"anoa.com/yamdbreview/internal/dto"
	"anoa.com/yamdbreview/internal/mailer"
	"anoa.com/yamdbreview/internal/model"
	"anoa.com/yamdbreview/internal/repository"
	"anoa.com/yamdbreview/internal/validation"
	"anoa.com/yamdbreview/pkg/apperror"
	"anoa.com/yamdbreview/pkg/auth"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type AuthService interface {
	SignUp(ctx context.Context, input dto.SignUpRequest) (*dto.SignUpResponse, error)
	IssueToken(ctx context.Context, input dto.TokenRequest) (*dto.TokenResponse, error)
}

type authService struct {
	repo           repository.UserRepository
	mail           mailer.Mailer
	redisClient    *redis.Client
	secret         string
	tokenTTL       time.Duration
	resendCooldown time.Duration
}

func NewAuthService(repo repository.UserRepository, mail mailer.Mailer, redisClient *redis.Client, cfg *config.Config) AuthService {
	return &authService{
		repo:           repo,
		mail:           mail,
		redisClient:    redisClient,
		secret:         cfg.JWTSecret,
		tokenTTL:       cfg.JWTTTL,
		resendCooldown: cfg.RateLimitSignup,
	}
}

// SignUp registers a new account or re-sends the confirmation code when
// the exact (username, email) pair is already registered.
func (s *authService) SignUp(ctx context.Context, input dto.SignUpRequest) (*dto.SignUpResponse, error) {
	if err := validation.ValidateUsername(input.Username); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.Email != input.Email {
			return nil, apperror.Wrap(apperror.ErrConflict, "username already taken")
		}
		return s.resend(ctx, existing)
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, apperror.Wrap(apperror.ErrConflict, "email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate confirmation code: %w", err)
	}

	user := &model.User{
		Username:         input.Username,
		Email:            input.Email,
		Role:             model.RoleUser,
		ConfirmationCode: &code,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		// Two signups racing on the same username or email: the
		// unique index fails the loser, report it as the usual
		// conflict.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Wrap(apperror.ErrConflict, "username or email already registered")
		}
		return nil, err
	}

	s.deliverCode(ctx, user, code)

	return &dto.SignUpResponse{Username: user.Username, Email: user.Email}, nil
}

// resend re-issues the stored code for the identical pair instead of
// creating a second row. A confirmed account (code already cleared)
// gets a fresh code.
func (s *authService) resend(ctx context.Context, user *model.User) (*dto.SignUpResponse, error) {
	allowed, err := CheckAndSetRateLimit(ctx, s.redisClient, user.Username, "signup", s.resendCooldown)
	if err != nil {
		return nil, err
	}
	if !allowed {
		ttl, _ := GetRateLimitTTL(ctx, s.redisClient, user.Username, "signup")
		return nil, apperror.Wrap(apperror.ErrRateLimitExceeded,
			fmt.Sprintf("confirmation code was sent recently, retry in %.0f seconds", ttl.Seconds()))
	}

	if user.ConfirmationCode == nil {
		code, err := generateConfirmationCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate confirmation code: %w", err)
		}
		user.ConfirmationCode = &code
		if err := s.repo.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	s.deliverCode(ctx, user, *user.ConfirmationCode)

	return &dto.SignUpResponse{Username: user.Username, Email: user.Email}, nil
}

// IssueToken exchanges a confirmation code for a signed access token
// and clears the code so it is single use.
func (s *authService) IssueToken(ctx context.Context, input dto.TokenRequest) (*dto.TokenResponse, error) {
	user, err := s.repo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Wrap(apperror.ErrNotFound, "user not found")
		}
		return nil, err
	}

	if user.ConfirmationCode == nil || *user.ConfirmationCode != input.ConfirmationCode {
		return nil, apperror.Wrap(apperror.ErrInvalidCode, "confirmation code is invalid or already used")
	}

	// Sign before clearing the code: a failed exchange must not
	// consume it.
	token, err := auth.GenerateToken(s.secret, s.tokenTTL, user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	user.ConfirmationCode = nil
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &dto.TokenResponse{Token: token}, nil
}

// deliverCode mails the code best-effort: a dead relay must not roll
// back the registration.
func (s *authService) deliverCode(ctx context.Context, user *model.User, code string) {
	if err := s.mail.SendConfirmationCode(ctx, user.Email, user.Username, code); err != nil {
		log.Printf("failed to send confirmation code to %s: %v", user.Email, err)
	}
}

// generateConfirmationCode draws a 6-digit code from crypto/rand.
func generateConfirmationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
