package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/giquina/armora-sub001/pkg/errors"
	"github.com/giquina/armora-sub001/pkg/util"
)

// Service exposes account workflows. It decides who a caller is; whether a
// booking gets the reward discount is derived from the result by the caller.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (UserView, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, error)
	ValidateToken(ctx context.Context, token string) (Claims, error)
	Profile(ctx context.Context, userID int64) (UserView, error)
	UnlockReward(ctx context.Context, userID int64) (UserView, error)
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
	now    func() time.Time
}

const (
	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	maxDisplayNameRunes = 40
	minPasswordLength   = 8
)

// NewService constructs a Service instance.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	return &service{
		cfg:    cfg,
		repo:   repo,
		logger: logger.With("component", "auth.service"),
		now:    util.NowUTC,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (UserView, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}
	name, err := normalizeDisplayName(req.DisplayName)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, err.Error(), nil)
	}
	if len(req.Password) < minPasswordLength {
		return UserView{}, apperrors.Wrap(apperrors.CodeInvalidInput, fmt.Sprintf("password must be at least %d characters", minPasswordLength), nil)
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserView{}, apperrors.Wrap(apperrors.CodeAuth, "failed to hash password", err)
	}
	user, err := s.repo.Create(ctx, email, name, string(hashed))
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return UserView{}, apperrors.Wrap(apperrors.CodeEmailExists, "email already registered", err)
		}
		return UserView{}, apperrors.Wrap(apperrors.CodeAuth, "failed to create user", err)
	}
	s.logger.Info("principal registered", "user", user.ID)
	return toView(user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "invalid email address", err)
	}
	if strings.TrimSpace(req.Password) == "" {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidInput, "password cannot be empty", nil)
	}
	user, found, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeAuth, "failed to fetch user", err)
	}
	if !found {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid email or password", nil)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidCredentials, "invalid email or password", nil)
	}
	return s.issue(user)
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (LoginResponse, error) {
	claims, err := s.parseToken(refreshToken)
	if err != nil {
		return LoginResponse{}, err
	}
	if claims.TokenType != tokenTypeRefresh {
		return LoginResponse{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token type mismatch", nil)
	}
	user, err := s.lookup(ctx, claims.UserID)
	if err != nil {
		return LoginResponse{}, err
	}
	return s.issue(user)
}

func (s *service) ValidateToken(_ context.Context, token string) (Claims, error) {
	if strings.TrimSpace(token) == "" {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token missing", nil)
	}
	claims, err := s.parseToken(token)
	if err != nil {
		return Claims{}, err
	}
	if claims.TokenType != tokenTypeAccess {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token type mismatch", nil)
	}
	return claims, nil
}

func (s *service) Profile(ctx context.Context, userID int64) (UserView, error) {
	user, err := s.lookup(ctx, userID)
	if err != nil {
		return UserView{}, err
	}
	return toView(user), nil
}

// UnlockReward grants the first-booking reward. Unlocking twice is harmless.
func (s *service) UnlockReward(ctx context.Context, userID int64) (UserView, error) {
	user, err := s.repo.UnlockReward(ctx, userID, s.now())
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return UserView{}, apperrors.Wrap(apperrors.CodeUserNotFound, "user not found", err)
		}
		return UserView{}, apperrors.Wrap(apperrors.CodeAuth, "failed to unlock reward", err)
	}
	s.logger.Info("reward unlocked", "user", user.ID)
	return toView(user), nil
}

func (s *service) lookup(ctx context.Context, userID int64) (User, error) {
	user, found, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return User{}, apperrors.Wrap(apperrors.CodeAuth, "failed to load user", err)
	}
	if !found {
		return User{}, apperrors.Wrap(apperrors.CodeUserNotFound, "user not found", nil)
	}
	return user, nil
}

func (s *service) issue(user User) (LoginResponse, error) {
	access, err := s.signToken(user, tokenTypeAccess, s.cfg.TokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	refresh, err := s.signToken(user, tokenTypeRefresh, s.cfg.RefreshTokenTTL)
	if err != nil {
		return LoginResponse{}, err
	}
	return LoginResponse{Token: access, RefreshToken: refresh, User: toView(user)}, nil
}

type tokenClaims struct {
	jwt.RegisteredClaims
	UserID    int64  `json:"uid"`
	Email     string `json:"email"`
	TokenType string `json:"typ"`
}

func (s *service) signToken(user User, tokenType string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := tokenClaims{
		UserID:    user.ID,
		Email:     user.Email,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ID:        newTokenID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.Secret))
	if err != nil {
		return "", apperrors.Wrap(apperrors.CodeAuth, "failed to sign token", err)
	}
	return signed, nil
}

func (s *service) parseToken(token string) (Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		return []byte(s.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired(), jwt.WithTimeFunc(s.now))
	if err != nil {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token validation failed", err)
	}
	claims, ok := parsed.Claims.(*tokenClaims)
	if !ok || !parsed.Valid {
		return Claims{}, apperrors.Wrap(apperrors.CodeInvalidToken, "token invalid", nil)
	}
	return Claims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		TokenType: claims.TokenType,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func toView(user User) UserView {
	return UserView{
		ID:             user.ID,
		Email:          user.Email,
		DisplayName:    user.DisplayName,
		RewardUnlocked: user.RewardUnlocked(),
		CreatedAt:      user.CreatedAt,
	}
}

func normalizeEmail(raw string) (string, error) {
	email := strings.TrimSpace(strings.ToLower(raw))
	if email == "" {
		return "", errors.New("email cannot be empty")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}

func normalizeDisplayName(raw string) (string, error) {
	name := strings.Join(strings.Fields(raw), " ")
	if name == "" {
		return "", errors.New("display name cannot be empty")
	}
	if len([]rune(name)) > maxDisplayNameRunes {
		return "", fmt.Errorf("display name cannot exceed %d characters", maxDisplayNameRunes)
	}
	return name, nil
}

func newTokenID() string {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 10)
	}
	return hex.EncodeToString(buf)
}
