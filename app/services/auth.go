package services

import (
	"context"
	"database/sql"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/pmpmaster/pmp-api/app/dto"
	appErrors "github.com/pmpmaster/pmp-api/app/errors"
	"github.com/pmpmaster/pmp-api/app/models"
	"github.com/pmpmaster/pmp-api/app/store"
)

// invalidCredentialsMessage is shared by the unknown-email and wrong-password
// paths so the two failures are indistinguishable to the caller.
const invalidCredentialsMessage = "invalid email or password"

// defaultMemberPassword seeds accounts created through the team endpoint;
// the member is expected to change it on first login.
const defaultMemberPassword = "password123"

const bcryptCost = 10

// AuthService turns credentials into sessions and sessions back into
// identities.
type AuthService struct {
	store store.Storage
}

func NewAuthService(store store.Storage) *AuthService {
	return &AuthService{store: store}
}

// Register creates a user and issues a session immediately: registration
// implies login.
func (s *AuthService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthData, *appErrors.AppError) {
	existing, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewInternal("error checking email").WithErr(err)
	}
	if existing != nil {
		return nil, appErrors.NewConflict("email already in use")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, appErrors.NewInternal("error hashing password").WithErr(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Role:         "user",
		Position:     req.Position,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		// The pre-check races with concurrent registrations; the unique
		// constraint is the authority.
		if store.IsUniqueViolation(err) {
			return nil, appErrors.NewConflict("email already in use")
		}
		return nil, appErrors.NewInternal("error creating user").WithErr(err)
	}

	token, err := GenerateSessionToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, appErrors.NewInternal("error generating session token").WithErr(err)
	}

	user.PasswordHash = ""
	return &dto.AuthData{User: user, Token: token}, nil
}

// Login verifies credentials and issues a new session token. Unknown email
// and wrong password return the same error value.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthData, *appErrors.AppError) {
	user, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewUnauthorized(invalidCredentialsMessage)
		}
		return nil, appErrors.NewInternal("error getting user by email").WithErr(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, appErrors.NewUnauthorized(invalidCredentialsMessage)
		}
		return nil, appErrors.NewInternal("error verifying password").WithErr(err)
	}

	token, err := GenerateSessionToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, appErrors.NewInternal("error generating session token").WithErr(err)
	}

	user.PasswordHash = ""
	return &dto.AuthData{User: user, Token: token}, nil
}

// ResolveSession turns a session token back into the current user record.
// Absent, malformed, tampered and expired tokens are all 401; a valid token
// whose user has since been deleted is 404.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.User, *appErrors.AppError) {
	if token == "" {
		return nil, appErrors.NewUnauthorized("not logged in")
	}

	claims, err := ValidateSessionToken(token)
	if err != nil {
		return nil, TokenError(err)
	}

	user, err := s.store.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.NewNotFound("user")
		}
		return nil, appErrors.NewInternal("error loading user").WithErr(err)
	}
	return user, nil
}

// CreateTeamMember provisions an account from the team page with the
// starter password; it does not issue a session.
func (s *AuthService) CreateTeamMember(ctx context.Context, req dto.CreateTeamMemberRequest) (*models.User, *appErrors.AppError) {
	existing, err := s.store.Users.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.NewInternal("error checking email").WithErr(err)
	}
	if existing != nil {
		return nil, appErrors.NewConflict("email already exists")
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(defaultMemberPassword), bcryptCost)
	if err != nil {
		return nil, appErrors.NewInternal("error hashing password").WithErr(err)
	}

	role := "user"
	if req.Role != nil && *req.Role != "" {
		role = *req.Role
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		FullName:     req.FullName,
		Role:         role,
		Position:     req.Position,
		AvatarURL:    req.AvatarURL,
	}
	if err := s.store.Users.Create(ctx, user); err != nil {
		if store.IsUniqueViolation(err) {
			return nil, appErrors.NewConflict("email already exists")
		}
		return nil, appErrors.NewInternal("error creating team member").WithErr(err)
	}

	user.PasswordHash = ""
	return user, nil
}
