package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/wobot-todo/backend/internal/errs"
)

// TokenKind separates access tokens from refresh tokens. Each kind is signed
// with its own secret.
type TokenKind string

const (
	AccessToken  TokenKind = "access"
	RefreshToken TokenKind = "refresh"
)

// TokenConfig is the process-wide signing configuration, built once at startup.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Algorithm     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

// TokenPayload is the decoded content of a valid token.
type TokenPayload struct {
	Subject   string
	ExpiresAt time.Time
	Kind      TokenKind
}

type tokenClaims struct {
	Kind TokenKind `json:"typ"`
	jwt.RegisteredClaims
}

// TokenService issues and decodes stateless signed bearer tokens.
// It is immutable after construction and safe for concurrent use.
type TokenService struct {
	method  jwt.SigningMethod
	secrets map[TokenKind][]byte
	ttls    map[TokenKind]time.Duration
	parser  *jwt.Parser
	now     func() time.Time
}

// TokenOption customizes a TokenService.
type TokenOption func(*TokenService)

// WithClock replaces time.Now as the source of issuance and validation time.
func WithClock(now func() time.Time) TokenOption {
	return func(s *TokenService) { s.now = now }
}

// NewTokenService validates cfg and returns a ready service. Any error wraps
// errs.ErrMisconfigured and must abort startup.
func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if len(cfg.AccessSecret) == 0 {
		return nil, fmt.Errorf("%w: access token secret is required", errs.ErrMisconfigured)
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, fmt.Errorf("%w: refresh token secret is required", errs.ErrMisconfigured)
	}
	if string(cfg.AccessSecret) == string(cfg.RefreshSecret) {
		return nil, fmt.Errorf("%w: access and refresh secrets must differ", errs.ErrMisconfigured)
	}

	method, ok := jwt.GetSigningMethod(cfg.Algorithm).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("%w: unsupported signing algorithm %q", errs.ErrMisconfigured, cfg.Algorithm)
	}

	if cfg.AccessTTL <= 0 || cfg.RefreshTTL <= 0 {
		return nil, fmt.Errorf("%w: token lifetimes must be positive", errs.ErrMisconfigured)
	}
	if cfg.AccessTTL > cfg.RefreshTTL {
		return nil, fmt.Errorf("%w: access lifetime %s exceeds refresh lifetime %s",
			errs.ErrMisconfigured, cfg.AccessTTL, cfg.RefreshTTL)
	}

	s := &TokenService{
		method: method,
		secrets: map[TokenKind][]byte{
			AccessToken:  append([]byte(nil), cfg.AccessSecret...),
			RefreshToken: append([]byte(nil), cfg.RefreshSecret...),
		},
		ttls: map[TokenKind]time.Duration{
			AccessToken:  cfg.AccessTTL,
			RefreshToken: cfg.RefreshTTL,
		},
		// Claims are validated by hand in Decode so expiry is always read from s.now.
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{method.Alg()}),
			jwt.WithoutClaimsValidation(),
			jwt.WithStrictDecoding(),
		),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// AccessTTL returns the default access token lifetime.
func (s *TokenService) AccessTTL() time.Duration { return s.ttls[AccessToken] }

// RefreshTTL returns the default refresh token lifetime.
func (s *TokenService) RefreshTTL() time.Duration { return s.ttls[RefreshToken] }

// IssueAccess signs an access token for subject. ttl <= 0 selects the default.
func (s *TokenService) IssueAccess(subject string, ttl time.Duration) (string, error) {
	return s.issue(AccessToken, subject, ttl)
}

// IssueRefresh signs a refresh token for subject. ttl <= 0 selects the default.
func (s *TokenService) IssueRefresh(subject string, ttl time.Duration) (string, error) {
	return s.issue(RefreshToken, subject, ttl)
}

func (s *TokenService) issue(kind TokenKind, subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("%w: empty token subject", errs.ErrInvalidInput)
	}
	if ttl <= 0 {
		ttl = s.ttls[kind]
	}

	now := s.now()
	claims := tokenClaims{
		Kind: kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry(now, ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secrets[kind])
	if err != nil {
		return "", fmt.Errorf("sign %s token: %w", kind, err)
	}
	return signed, nil
}

// Decode verifies the signature of token with the secret of kind, then checks
// the claims and compares exp against the current time.
//
// It returns errs.ErrMalformedToken when the token cannot be parsed, does not
// verify, was issued for the other kind or lacks sub/exp, and
// errs.ErrExpiredToken when it is authentic but exp <= now.
func (s *TokenService) Decode(token string, kind TokenKind) (TokenPayload, error) {
	secret, ok := s.secrets[kind]
	if !ok {
		return TokenPayload{}, fmt.Errorf("%w: unknown token kind %q", errs.ErrMalformedToken, kind)
	}

	var claims tokenClaims
	parsed, err := s.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return TokenPayload{}, malformed(err)
	}

	if claims.Kind != kind {
		return TokenPayload{}, fmt.Errorf("%w: %s token presented as %s", errs.ErrMalformedToken, claims.Kind, kind)
	}
	if claims.Subject == "" || claims.ExpiresAt == nil {
		return TokenPayload{}, fmt.Errorf("%w: missing sub or exp", errs.ErrMalformedToken)
	}

	exp := claims.ExpiresAt.Time
	if !s.now().Before(exp) {
		return TokenPayload{}, errs.ErrExpiredToken
	}

	return TokenPayload{Subject: claims.Subject, ExpiresAt: exp, Kind: kind}, nil
}

func malformed(err error) error {
	if err == nil {
		return errs.ErrMalformedToken
	}
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: bad signature", errs.ErrMalformedToken)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: unverifiable", errs.ErrMalformedToken)
	default:
		return fmt.Errorf("%w: bad shape", errs.ErrMalformedToken)
	}
}

// expiry rounds now+ttl up to the JWT time precision so that a freshly issued
// token is never already expired.
func expiry(now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	if t := exp.Truncate(jwt.TimePrecision); t.Before(exp) {
		return t.Add(jwt.TimePrecision)
	}
	return exp
}
