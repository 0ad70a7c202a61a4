package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultTokenTTL = 30 * time.Minute

// Claims is the decoded claim set of a token. Numeric claims come back as
// float64, following encoding/json.
type Claims map[string]any

func (c Claims) Subject() string {
	sub, _ := c["sub"].(string)
	return sub
}

type CodecOption func(*TokenCodec)

func WithClock(now func() time.Time) CodecOption {
	return func(c *TokenCodec) {
		if now != nil {
			c.now = now
		}
	}
}

// TokenCodec signs and validates HS256 tokens with one process-wide key.
// It keeps no state besides its configuration and is safe for concurrent use.
type TokenCodec struct {
	key    []byte
	method jwt.SigningMethod
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

func NewTokenCodec(secret string, defaultTTL time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if secret == "" {
		return nil, errors.New("token signing key is required")
	}
	if defaultTTL <= 0 {
		defaultTTL = DefaultTokenTTL
	}

	c := &TokenCodec{
		key:    []byte(secret),
		method: jwt.SigningMethodHS256,
		ttl:    defaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)

	return c, nil
}

func (c *TokenCodec) DefaultTTL() time.Duration {
	return c.ttl
}

// Issue signs claims plus an exp of now+ttl. A caller-supplied exp is
// overwritten. A negative ttl produces a token that is already expired.
// exp has whole-second precision: for a positive ttl it is rounded up, so the
// token stays valid for at least ttl.
func (c *TokenCodec) Issue(claims map[string]any, ttl time.Duration) (string, error) {
	merged := make(jwt.MapClaims, len(claims)+1)
	for k, v := range claims {
		merged[k] = v
	}
	merged["exp"] = jwt.NewNumericDate(expiryFor(c.now(), ttl))

	return jwt.NewWithClaims(c.method, merged).SignedString(c.key)
}

func expiryFor(now time.Time, ttl time.Duration) time.Time {
	exp := now.Add(ttl)
	if ttl <= 0 {
		return exp
	}
	if whole := exp.Truncate(time.Second); whole.Before(exp) {
		return whole.Add(time.Second)
	}
	return exp
}

func (c *TokenCodec) IssueDefault(claims map[string]any) (string, error) {
	return c.Issue(claims, c.ttl)
}

// Validate checks signature, algorithm and expiry. The token is rejected at
// exactly its exp instant. Every failure collapses into ErrInvalidToken.
func (c *TokenCodec) Validate(token string) (Claims, error) {
	mapClaims := jwt.MapClaims{}
	parsed, err := c.parser.ParseWithClaims(token, mapClaims, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return Claims(mapClaims), nil
}
