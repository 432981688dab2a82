// Package auth implements the HTTP-boundary authentication checks: bearer
// JWT validation and API-key comparison.
//
// This service only ever validates tokens issued elsewhere (there is no
// login endpoint in its HTTP surface), so there is no token issuance here.
// Tokens must be HS256-signed and carry exp, iss, and iat, with issuer
// "rodan"; nothing in the routes reads a role or subject out of the token,
// so no custom claim fields exist.
package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "rodan"

// Claims is the claim set this service validates. No custom fields are
// read by any handler; embedding jwt.RegisteredClaims is enough to carry
// exp/iss/iat through validation.
type Claims struct {
	jwt.RegisteredClaims
}

// Verifier validates bearer tokens against a single HMAC secret.
type Verifier struct {
	secret []byte
}

// NewVerifier returns a Verifier using secret as the HS256 key.
func NewVerifier(secret []byte) *Verifier {
	return &Verifier{secret: secret}
}

// Verify parses tokenString and validates it is HS256-signed by this
// Verifier's secret, carries exp/iss/iat, and was issued by "rodan". Every
// failure is returned as a single opaque error; callers map any non-nil
// error to an unauthorized response without distinguishing cause.
func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
	)
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.IssuedAt == nil {
		return nil, fmt.Errorf("token is missing the iat claim")
	}
	return claims, nil
}
