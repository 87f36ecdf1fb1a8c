// Package jwttoken issues and verifies HS256 session tokens.
package jwttoken

import (
	"errors"
	"fmt"
	"time"

	"transportconnect/internal/core/domain/model/identity"
	"transportconnect/internal/core/domain/model/kernel"
	"transportconnect/internal/core/ports"
	"transportconnect/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	MinSecretLength = 32
	DefaultTTL      = 30 * 24 * time.Hour
	DefaultIssuer   = "transportconnect"
)

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	clock  ports.Clock
	parser *jwt.Parser
}

func New(cfg Config, clock ports.Clock) (*Service, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, errs.NewValueIsOutOfRangeError("jwt secret length", len(cfg.Secret), MinSecretLength, "unbounded")
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultIssuer
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	return &Service{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ttl:    cfg.TTL,
		clock:  clock,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(cfg.Issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
			jwt.WithTimeFunc(clock.Now),
		),
	}, nil
}

func (s *Service) Issue(subject kernel.UUID, role identity.Role) (ports.Token, error) {
	if err := errors.Join(subject.Validate(), role.Validate()); err != nil {
		return ports.Token{}, err
	}

	now := s.clock.Now()
	expiresAt := jwt.NewNumericDate(now.Add(s.ttl))
	tokenID := uuid.NewString()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   subject.String(),
			ID:        tokenID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: expiresAt,
		},
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return ports.Token{}, fmt.Errorf("sign token: %w", err)
	}

	return ports.Token{Value: signed, ID: tokenID, ExpiresAt: expiresAt.Time.UTC()}, nil
}

func (s *Service) Parse(raw string) (ports.TokenClaims, error) {
	if raw == "" {
		return ports.TokenClaims{}, fmt.Errorf("%w: token is empty", errs.ErrInvalidToken)
	}

	var c claims
	if _, err := s.parser.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}); err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: %w", errs.ErrInvalidToken, err)
	}

	subject, err := kernel.UUIDFromString(c.Subject)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: subject: %w", errs.ErrInvalidToken, err)
	}
	role, err := identity.ParseRole(c.Role)
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: role: %w", errs.ErrInvalidToken, err)
	}
	if c.ID == "" {
		return ports.TokenClaims{}, fmt.Errorf("%w: token id is missing", errs.ErrInvalidToken)
	}

	out := ports.TokenClaims{Subject: subject, Role: role, ID: c.ID, ExpiresAt: c.ExpiresAt.Time.UTC()}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time.UTC()
	}
	return out, nil
}
