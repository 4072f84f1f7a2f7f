package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ActorClaims are the claims carried by upstream-issued staff tokens.
// Authentication itself happens outside this service; we only decode and
// verify the shared-secret signature to learn who is acting.
type ActorClaims struct {
	ActorID        uuid.UUID `json:"actor_id"`
	OrganizationID uuid.UUID `json:"organization_id"`
	Email          string    `json:"email"`
	Roles          []string  `json:"roles"`
	jwt.RegisteredClaims
}

// TokenVerifier validates actor tokens against the shared signing secret
type TokenVerifier struct {
	secretKey []byte
}

// NewTokenVerifier creates a new token verifier
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secretKey: []byte(secret)}
}

// Verify parses and validates an actor token, returning its claims
func (v *TokenVerifier) Verify(tokenString string) (*ActorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &ActorClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secretKey, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*ActorClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Sign issues a token for the given claims. Used by fixtures and local
// tooling; production tokens come from the identity service.
func (v *TokenVerifier) Sign(actorID, orgID uuid.UUID, email string, roles []string, ttl time.Duration) (string, error) {
	claims := &ActorClaims{
		ActorID:        actorID,
		OrganizationID: orgID,
		Email:          email,
		Roles:          roles,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
			Issuer:    "sanad-api",
			Subject:   actorID.String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secretKey)
}
