package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/benarowo/circleconnect/internal/domain"
	"github.com/benarowo/circleconnect/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// federatedSessionTTL matches the original server-side session window.
const federatedSessionTTL = 7 * 24 * time.Hour

// Credentials carries whichever inputs the selected strategy needs.
type Credentials struct {
	// Password strategy
	Email    string
	Password string

	// Federated strategy
	Code string
}

// Strategy validates a credential set and yields a canonical local
// identity. One variant exists per authentication method; the route
// selects the variant.
type Strategy interface {
	Name() string
	Validate(ctx context.Context, creds Credentials) (*domain.User, error)
}

// passwordStrategy authenticates against the stored bcrypt hash. This
// is the only place a password comparison happens.
type passwordStrategy struct {
	userRepo repository.UserRepository
}

func NewPasswordStrategy(userRepo repository.UserRepository) Strategy {
	return &passwordStrategy{userRepo: userRepo}
}

func (s *passwordStrategy) Name() string { return "password" }

func (s *passwordStrategy) Validate(ctx context.Context, creds Credentials) (*domain.User, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, fmt.Errorf("%w: email and password must be provided", domain.ErrValidation)
	}

	user, err := s.userRepo.GetByEmail(ctx, creds.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
		}
		return nil, err
	}

	if !user.HasPassword() {
		return nil, domain.ErrMissingCredential
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(creds.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return user.Scrubbed(), nil
}

// federatedStrategy resolves or provisions a local user from a
// provider-issued profile.
type federatedStrategy struct {
	provider Provider
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
}

func NewFederatedStrategy(provider Provider, userRepo repository.UserRepository, roleRepo repository.RoleRepository) Strategy {
	return &federatedStrategy{provider: provider, userRepo: userRepo, roleRepo: roleRepo}
}

func (s *federatedStrategy) Name() string { return s.provider.Name() }

func (s *federatedStrategy) Validate(ctx context.Context, creds Credentials) (*domain.User, error) {
	profile, err := s.provider.FetchProfile(ctx, creds.Code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthProvider, err)
	}

	user, err := s.userRepo.GetByProviderID(ctx, s.provider.Name(), profile.ProviderID)
	if err == nil {
		return user.Scrubbed(), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	role, err := s.roleRepo.GetByName(ctx, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	user = &domain.User{
		ID:             uuid.New(),
		Email:          profile.Email,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		ProfilePicture: profile.Picture,
		Provider:       s.provider.Name(),
		ProviderID:     profile.ProviderID,
		RoleID:         role.ID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	user.Role = role

	return user.Scrubbed(), nil
}

type AuthService struct {
	strategies  map[string]Strategy
	providers   map[string]Provider
	userRepo    repository.UserRepository
	roleRepo    repository.RoleRepository
	sessionRepo repository.SessionRepository
	tokens      *TokenService
	limiter     LoginRateLimiter
	logger      *zap.Logger
}

func NewAuthService(
	repos *repository.Repositories,
	tokens *TokenService,
	limiter LoginRateLimiter,
	logger *zap.Logger,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AuthService{
		strategies:  make(map[string]Strategy),
		providers:   make(map[string]Provider),
		userRepo:    repos.User,
		roleRepo:    repos.Role,
		sessionRepo: repos.Session,
		tokens:      tokens,
		limiter:     limiter,
		logger:      logger,
	}
	s.RegisterStrategy(NewPasswordStrategy(repos.User))
	return s
}

func (s *AuthService) RegisterStrategy(strategy Strategy) {
	s.strategies[strategy.Name()] = strategy
}

// RegisterFederated wires a federated identity provider in as a
// strategy and keeps the provider around for the redirect flow.
func (s *AuthService) RegisterFederated(provider Provider) {
	s.providers[provider.Name()] = provider
	s.RegisterStrategy(NewFederatedStrategy(provider, s.userRepo, s.roleRepo))
}

func (s *AuthService) Strategy(name string) (Strategy, bool) {
	strategy, ok := s.strategies[name]
	return strategy, ok
}

func (s *AuthService) Provider(name string) (Provider, bool) {
	provider, ok := s.providers[name]
	return provider, ok
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

type AuthResult struct {
	User  *domain.User
	Token string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password must be provided", domain.ErrValidation)
	}
	if len(input.Password) < domain.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", domain.ErrValidation, domain.MinPasswordLength)
	}

	role, err := s.roleRepo.GetByName(ctx, domain.RoleMember)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hash := string(hashed)

	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: &hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		RoleID:       role.ID,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	user.Role = role

	return s.issue(user.Scrubbed())
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	if s.limiter != nil && !s.limiter.Allow(email) {
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.strategies["password"].Validate(ctx, Credentials{Email: email, Password: password})
	if err != nil {
		return nil, err
	}

	return s.issue(user)
}

// FederatedLogin runs the named provider strategy and, on success,
// additionally records a server-side session row — the federated flow
// keeps both the stateless token and the persisted session.
func (s *AuthService) FederatedLogin(ctx context.Context, provider, code string) (*AuthResult, error) {
	strategy, ok := s.strategies[provider]
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", domain.ErrValidation, provider)
	}

	user, err := strategy.Validate(ctx, Credentials{Code: code})
	if err != nil {
		return nil, err
	}

	session := &domain.FederatedSession{
		ID:        uuid.New(),
		UserID:    user.ID,
		Provider:  provider,
		ExpiresAt: time.Now().Add(federatedSessionTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return s.issue(user)
}

func (s *AuthService) issue(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Token: token}, nil
}

// ResolveIdentity turns a raw token into a full identity, role
// included. Used by the session middleware on every protected request.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*domain.User, error) {
	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	return user.Scrubbed(), nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user", domain.ErrNotFound)
		}
		return nil, err
	}
	return user.Scrubbed(), nil
}

// Logout clears any federated sessions. Stateless tokens cannot be
// revoked; they simply age out.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	return s.sessionRepo.DeleteByUserID(ctx, userID)
}
