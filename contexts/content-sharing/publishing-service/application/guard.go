package application

import (
	"strings"

	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
	"plume/contexts/content-sharing/publishing-service/ports"
)

// Guard resolves the calling identity from a bearer credential.
type Guard struct {
	Tokens ports.TokenSource
}

// ResolveIdentity extracts and verifies the bearer credential, returning
// the subject account id or "" for anonymous calls.
//
// A credential that is present but fails verification is always fatal,
// even when require is false: optional auth tolerates absence, never a
// malformed or expired token.
func (g Guard) ResolveIdentity(authorization string, require bool) (string, error) {
	token := bearerToken(authorization)
	if token != "" {
		subject, err := g.Tokens.Verify(token)
		if err != nil {
			return "", domainerrors.ErrTokenInvalid
		}
		return subject, nil
	}
	if require {
		return "", domainerrors.ErrAuthenticationRequired
	}
	return "", nil
}

// IsOwner reports whether the identity owns the resource keyed by ownerID.
func (g Guard) IsOwner(identity string, ownerID string) bool {
	return identity != "" && identity == ownerID
}

func bearerToken(authorization string) string {
	authorization = strings.TrimSpace(authorization)
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return authorization
}
