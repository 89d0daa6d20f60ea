package server

import (
	"fmt"
	"time"

	"drishti/pkg/types"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

// signToken mints the bearer token returned by login: an HS256-signed JWT
// carrying the user id as subject and the role as a private claim.
func (s *Service) signToken(userID string, role types.RoleName) (string, error) {
	now := time.Now()

	token, err := jwt.NewBuilder().
		Subject(userID).
		Claim("role", string(role)).
		IssuedAt(now).
		Expiration(now.Add(time.Duration(s.config.TokenTTLMin) * time.Minute)).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build token: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256(), s.signingKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return string(signed), nil
}

// parseToken verifies signature and expiry and extracts the subject and
// role claim.
func (s *Service) parseToken(raw string) (string, types.RoleName, error) {
	token, err := jwt.Parse(
		[]byte(raw),
		jwt.WithKey(jwa.HS256(), s.signingKey),
		jwt.WithValidate(true),
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse token: %w", err)
	}

	userID, ok := token.Subject()
	if !ok || userID == "" {
		return "", "", fmt.Errorf("token has no subject")
	}

	var role string
	if err := token.Get("role", &role); err != nil {
		return "", "", fmt.Errorf("token has no role claim: %w", err)
	}

	return userID, types.RoleName(role), nil
}
