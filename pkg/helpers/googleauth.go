package helpers

import (
	"context"
	"errors"

	"google.golang.org/api/idtoken"
)

// ErrGoogleToken is the generic failure for federated identity token
// verification; the precise cause is logged internally, never surfaced.
var ErrGoogleToken = errors.New("google token verification failed")

// GoogleIdentity holds the verified claims extracted from a Google-issued
// ID token.
type GoogleIdentity struct {
	SubjectID string
	Email     string
	Name      string
	Picture   string
}

// GoogleVerifier validates Google ID tokens against Google's published
// signing keys and the configured OAuth client ID (audience).
type GoogleVerifier struct {
	Audience string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{Audience: clientID}
}

// Verify checks the token's signature, expiry and audience, and extracts
// the identity claims. Claims are only read after validation succeeds.
func (v *GoogleVerifier) Verify(ctx context.Context, rawToken string) (*GoogleIdentity, error) {
	payload, err := idtoken.Validate(ctx, rawToken, v.Audience)
	if err != nil {
		return nil, err
	}
	id := &GoogleIdentity{
		SubjectID: payload.Subject,
		Email:     claimString(payload.Claims, "email"),
		Name:      claimString(payload.Claims, "name"),
		Picture:   claimString(payload.Claims, "picture"),
	}
	if id.Email == "" || id.SubjectID == "" {
		return nil, ErrGoogleToken
	}
	return id, nil
}

func claimString(claims map[string]interface{}, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
