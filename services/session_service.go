package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"tech-booking-server/config"
	"tech-booking-server/models"
	"tech-booking-server/types"
)

const sessionIssuer = "tech-booking-server"

var ErrInvalidSession = errors.New("invalid session token")

// SessionService signs and verifies the HS256 session tokens carried in the
// session cookie or an Authorization header.
type SessionService struct {
	secret      []byte
	lifetime    time.Duration
	rememberFor time.Duration
}

// NewSessionService creates a new session service
func NewSessionService(cfg config.SessionConfig) *SessionService {
	return &SessionService{
		secret:      []byte(cfg.Secret),
		lifetime:    cfg.Lifetime,
		rememberFor: cfg.RememberFor,
	}
}

// Session is an issued token together with its expiry.
type Session struct {
	Token     string
	ExpiresAt time.Time
	// Persistent sessions get a cookie with an explicit expiry.
	Persistent bool
}

// Issue signs a token for user. remember extends the expiry to the remember
// duration and marks the session persistent.
func (s *SessionService) Issue(user *models.User, remember bool) (*Session, error) {
	ttl := s.lifetime
	if remember && s.rememberFor > 0 {
		ttl = s.rememberFor
	}

	now := time.Now()
	expiresAt := now.Add(ttl)
	claims := &types.Claims{
		UserID: user.ID,
		Role:   string(user.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	return &Session{Token: signed, ExpiresAt: expiresAt, Persistent: remember}, nil
}

// Parse validates the signature, algorithm and expiry of a token.
func (s *SessionService) Parse(tokenString string) (*types.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &types.Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	}, jwt.WithIssuer(sessionIssuer), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*types.Claims)
	if !ok || !token.Valid || claims.UserID == 0 {
		return nil, ErrInvalidSession
	}
	return claims, nil
}
