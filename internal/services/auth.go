package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wayfarelabs/wayfare-backend/internal/pkg/apierr"
	"github.com/wayfarelabs/wayfare-backend/internal/pkg/logger"
	"github.com/wayfarelabs/wayfare-backend/internal/repos"
	"github.com/wayfarelabs/wayfare-backend/internal/types"
	"github.com/wayfarelabs/wayfare-backend/internal/utils"
)

var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

type AuthResult struct {
	User  *types.User `json:"user"`
	Token string      `json:"token"`
}

// TokenClaims is what the auth middleware gets back from ParseToken.
type TokenClaims struct {
	UserID uuid.UUID
	Email  string
}

type AuthService interface {
	Register(ctx context.Context, in *RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Me(ctx context.Context, userID uuid.UUID) (*types.User, error)
	ParseToken(token string) (*TokenClaims, error)
}

type authService struct {
	log      *logger.Logger
	userRepo repos.UserRepo
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(baseLog *logger.Logger, userRepo repos.UserRepo, secret string, tokenTTL time.Duration) AuthService {
	return &authService{
		log:      baseLog.With("service", "AuthService"),
		userRepo: userRepo,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

func validateRegister(in *RegisterInput) []apierr.FieldError {
	var fields []apierr.FieldError
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		fields = append(fields, apierr.FieldError{Field: "email", Message: "A valid email is required"})
	}
	if len(in.Password) < 8 {
		fields = append(fields, apierr.FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}
	if strings.TrimSpace(in.FirstName) == "" {
		fields = append(fields, apierr.FieldError{Field: "firstName", Message: "First name is required"})
	}
	if strings.TrimSpace(in.LastName) == "" {
		fields = append(fields, apierr.FieldError{Field: "lastName", Message: "Last name is required"})
	}
	return fields
}

func (s *authService) signToken(user *types.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"id":    user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *authService) Register(ctx context.Context, in *RegisterInput) (*AuthResult, error) {
	if fields := validateRegister(in); len(fields) > 0 {
		return nil, apierr.Validation(fields...)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	exists, err := s.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if exists {
		return nil, apierr.Validation(apierr.FieldError{Field: "email", Message: "Email already registered"})
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	user := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  hashed,
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Phone:     strings.TrimSpace(in.Phone),
	}
	created, err := s.userRepo.Create(ctx, nil, user)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	token, err := s.signToken(created)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	s.log.Info("User registered", "user_id", created.ID, "email", created.Email)
	return &AuthResult{User: created, Token: token}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	// Same response whether the account is missing or the password is wrong.
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return nil, apierr.Unauthorized("Invalid credentials")
	}

	token, err := s.signToken(user)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	s.log.Info("User logged in", "user_id", user.ID)
	return &AuthResult{User: user, Token: token}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	user, err := s.userRepo.GetByIDWithProfile(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if user == nil {
		return nil, apierr.NotFound("User not found")
	}
	return user, nil
}

func (s *authService) ParseToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	rawID, _ := claims["id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	email, _ := claims["email"].(string)
	return &TokenClaims{UserID: userID, Email: email}, nil
}
