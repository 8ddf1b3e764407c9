// Package auth implements the credential store and token service:
// registration, credential verification, and the issue/validate/revoke
// lifecycle of signed session tokens.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/Korolev2000/flightbooking/internal/domain"
	"github.com/Korolev2000/flightbooking/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type AuthUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*Session, error)
	Login(ctx context.Context, username, password string) (*Session, error)
	ParseToken(ctx context.Context, tokenString string) (*Claims, error)
	Revoke(ctx context.Context, tokenString string) error
}

// Blacklist is the revoked-token set. Membership is permanent from the
// validator's point of view: entries only leave the set once the token
// they name has expired anyway.
type Blacklist interface {
	Revoke(ctx context.Context, token string, ttl time.Duration) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// Claims are embedded in every issued token. Subject carries the
// username, so a token is verifiable without a user lookup.
type Claims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

func (c *Claims) Username() string { return c.Subject }

type RegisterInput struct {
	Username string
	Password string
	// Admin is taken from the request as-is. There is no separate
	// elevation process.
	Admin bool
}

// Session is the result of a successful registration or login.
type Session struct {
	User  domain.User
	Token string
}

type AuthService struct {
	users     repository.UserRepository
	blacklist Blacklist
	secret    []byte
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(users repository.UserRepository, blacklist Blacklist, secret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	return &AuthService{
		users:     users,
		blacklist: blacklist,
		secret:    []byte(secret),
		tokenTTL:  tokenTTL,
		log:       log,
	}
}

// Register creates the user and issues a session token right away, so
// a fresh signup does not need a follow-up login call.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*Session, error) {
	if input.Username == "" || input.Password == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		Username:     input.Username,
		PasswordHash: string(hash),
		Admin:        input.Admin,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info().Str("username", user.Username).Bool("admin", user.Admin).Msg("user registered")
	return s.newSession(user)
}

// Login verifies the credentials. The failure response is identical
// for an unknown username and a wrong password; only the log line
// tells them apart.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	if username == "" || password == "" {
		return nil, domain.NewError(domain.ErrInvalidInput, "Username and password required")
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.Warn().Str("username", username).Msg("login failed: unknown user")
			return nil, domain.ErrBadCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.log.Warn().Str("username", username).Msg("login failed: wrong password")
		return nil, domain.ErrBadCredentials
	}

	return s.newSession(*user)
}

// ParseToken validates the signature and expiry and then checks the
// blacklist. Validation succeeds only while all three hold.
func (s *AuthService) ParseToken(ctx context.Context, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, s.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	revoked, err := s.blacklist.IsRevoked(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrTokenInvalid
	}

	return claims, nil
}

// Revoke adds the exact token string to the blacklist. The entry lives
// as long as the token itself would; revoking an already revoked or
// already expired token is a no-op, not an error.
func (s *AuthService) Revoke(ctx context.Context, tokenString string) error {
	ttl := s.tokenTTL

	claims := &Claims{}
	parser := jwt.NewParser(jwt.WithoutClaimsValidation(), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if _, err := parser.ParseWithClaims(tokenString, claims, s.keyFunc); err == nil && claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
		if ttl <= 0 {
			// Expired tokens already fail validation on their own.
			return nil
		}
	}

	if err := s.blacklist.Revoke(ctx, tokenString, ttl); err != nil {
		return err
	}
	s.log.Info().Str("username", claims.Subject).Msg("token revoked")
	return nil
}

func (s *AuthService) newSession(user domain.User) (*Session, error) {
	now := time.Now()
	claims := &Claims{
		Admin: user.Admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	}

	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, err
	}

	return &Session{User: user, Token: tokenString}, nil
}

func (s *AuthService) keyFunc(_ *jwt.Token) (interface{}, error) {
	return s.secret, nil
}

var _ AuthUseCase = (*AuthService)(nil)
