// Package token implements the signed credential codec. Issue and Verify are
// pure functions of the token, the server secret, and the clock: no I/O, no
// store lookups. The claim snapshot embedded at issuance is never refreshed;
// callers that need the current role must re-resolve the subject themselves.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/aereovisao/portal-api/internal/core/domain"
)

// Audiences keep the two principal kinds disjoint: a portal token never
// verifies against the institutional guard and vice versa.
const (
	AudiencePortal        = "portal"
	AudienceInstitucional = "institucional"
)

var (
	ErrMalformed        = errors.New("token malformed")
	ErrInvalidSignature = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	// ErrWrongAudience rejects a structurally valid token issued for the
	// other principal kind.
	ErrWrongAudience = errors.New("token audience mismatch")
	// ErrSigning signals an unrecoverable key/configuration failure.
	ErrSigning = errors.New("token signing failed")
)

// Claims is the snapshot embedded in every issued token.
type Claims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Codec signs and verifies HS256 bearer tokens.
type Codec struct {
	secret []byte
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Issue produces a signed token for subject, expiring at now+ttl.
func (c *Codec) Issue(subject string, role domain.Role, audience string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", errors.Join(ErrSigning, err)
	}
	return signed, nil
}

// Verify parses and validates raw for the given audience. Failures map to
// exactly one of ErrExpired, ErrInvalidSignature, ErrWrongAudience or
// ErrMalformed.
func (c *Codec) Verify(raw, audience string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid || claims.Subject == "" {
		return nil, ErrMalformed
	}
	if !hasAudience(claims.Audience, audience) {
		return nil, ErrWrongAudience
	}
	return claims, nil
}

func hasAudience(aud jwt.ClaimStrings, want string) bool {
	for _, a := range aud {
		if a == want {
			return true
		}
	}
	return false
}
