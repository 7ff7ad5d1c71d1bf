package auth

import (
	"context"
	"errors"

	autherrors "github.com/YugandharPise/SME-HR/internal/auth/errors"
	"github.com/YugandharPise/SME-HR/internal/rbac"
	"github.com/YugandharPise/SME-HR/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Login(ctx context.Context, email, password string) (LoginResponse, error)
	GetMe(ctx context.Context, identity rbac.Identity) (*AuthResponse, error)
}

type service struct {
	repo      Repository
	tokens    *TokenManager
	logger    *zap.Logger
	dummyHash []byte
}

func NewService(repo Repository, tokens *TokenManager, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}

	// Compared against when the email is unknown so both failure paths pay for one bcrypt.
	dummy, err := bcrypt.GenerateFromPassword([]byte("sme-hr-dummy-password"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}

	return &service{repo: repo, tokens: tokens, logger: l, dummyHash: dummy}
}

func (s *service) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, autherrors.ErrUserNotFound) {
			return LoginResponse{}, err
		}
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		log.Info("login rejected")
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Info("login rejected")
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(*user)
	if err != nil {
		log.Error("issue token failed", zap.Error(err))
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	log.Info("login succeeded", zap.Int64("user_id", user.ID), zap.String("role", user.Role.String()))
	return LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      toAuthResponse(user),
	}, nil
}

func (s *service) GetMe(ctx context.Context, identity rbac.Identity) (*AuthResponse, error) {
	u, err := s.repo.GetByID(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	resp := toAuthResponse(u)
	return &resp, nil
}
