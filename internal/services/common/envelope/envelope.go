// Package envelope seals and opens the HS256 JWT payloads exchanged in
// Request.input and Response.output.
//
// A token carries its payload under the "jwt_info" claim and always has an
// expiry, matching the tokens produced by the Adenine SDKs.
package envelope

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the lifetime given to sealed tokens when none is configured.
const DefaultTTL = 30 * time.Second

var (
	// ErrExpired reports a token whose exp claim has passed.
	ErrExpired = errors.New("token has expired")
	// ErrInvalid reports a malformed token, a bad signature or a wrong algorithm.
	ErrInvalid = errors.New("token is invalid")
)

// Info is the payload carried under the jwt_info claim. Values may be any
// JSON type.
type Info map[string]any

// String returns the value under key when it is a JSON string, or "".
func (i Info) String(key string) string {
	value, _ := i[key].(string)
	return value
}

type claims struct {
	jwt.RegisteredClaims
	Info Info `json:"jwt_info"`
}

// Envelope signs and verifies tokens with one shared secret.
type Envelope struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// Option configures an Envelope.
type Option func(*Envelope)

// WithTTL sets the lifetime of sealed tokens.
func WithTTL(ttl time.Duration) Option {
	return func(e *Envelope) {
		if ttl > 0 {
			e.ttl = ttl
		}
	}
}

// WithClock replaces the time source used for exp claims and validation.
func WithClock(now func() time.Time) Option {
	return func(e *Envelope) {
		if now != nil {
			e.now = now
		}
	}
}

// New returns an Envelope keyed by secret.
func New(secret string, opts ...Option) (*Envelope, error) {
	if secret == "" {
		return nil, errors.New("shared secret is required")
	}
	e := &Envelope{
		secret: []byte(secret),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Seal returns a signed token carrying info.
func (e *Envelope) Seal(info Info) (string, error) {
	if info == nil {
		info = Info{}
	}
	now := e.now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(e.ttl)),
		},
		Info: info,
	})
	signed, err := token.SignedString(e.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Open verifies token and returns its info. Failures wrap ErrExpired or ErrInvalid.
func (e *Envelope) Open(token string) (Info, error) {
	if token == "" {
		return nil, fmt.Errorf("%w: token is empty", ErrInvalid)
	}
	var parsed claims
	_, err := jwt.ParseWithClaims(token, &parsed, func(*jwt.Token) (any, error) {
		return e.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(e.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if parsed.Info == nil {
		parsed.Info = Info{}
	}
	return parsed.Info, nil
}
