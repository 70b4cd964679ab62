package application

import (
	"errors"
	"testing"
	"time"

	"plume/contexts/content-sharing/publishing-service/adapters/token"
	domainerrors "plume/contexts/content-sharing/publishing-service/domain/errors"
)

func TestResolveIdentity(t *testing.T) {
	tokens := token.NewJWT([]byte("guard-secret"), time.Hour)
	guard := Guard{Tokens: tokens}

	valid, err := tokens.Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	cases := []struct {
		name          string
		authorization string
		require       bool
		wantIdentity  string
		wantErr       error
	}{
		{name: "bearer token", authorization: "Bearer " + valid, require: true, wantIdentity: "user-1"},
		{name: "raw token", authorization: valid, require: true, wantIdentity: "user-1"},
		{name: "lowercase scheme", authorization: "bearer " + valid, require: false, wantIdentity: "user-1"},
		{name: "absent optional", authorization: "", require: false, wantIdentity: ""},
		{name: "absent required", authorization: "", require: true, wantErr: domainerrors.ErrAuthenticationRequired},
		{name: "garbage required", authorization: "Bearer not-a-token", require: true, wantErr: domainerrors.ErrTokenInvalid},
		{name: "garbage optional", authorization: "Bearer not-a-token", require: false, wantErr: domainerrors.ErrTokenInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			identity, err := guard.ResolveIdentity(tc.authorization, tc.require)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got %v, want %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("resolve failed: %v", err)
			}
			if identity != tc.wantIdentity {
				t.Fatalf("identity %q, want %q", identity, tc.wantIdentity)
			}
		})
	}
}

func TestResolveIdentityRejectsForeignSecret(t *testing.T) {
	foreign, err := token.NewJWT([]byte("other-secret"), time.Hour).Issue("user-1")
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	guard := Guard{Tokens: token.NewJWT([]byte("guard-secret"), time.Hour)}
	if _, err := guard.ResolveIdentity("Bearer "+foreign, false); !errors.Is(err, domainerrors.ErrTokenInvalid) {
		t.Fatalf("got %v, want token invalid", err)
	}
}

func TestIsOwner(t *testing.T) {
	guard := Guard{}
	if !guard.IsOwner("user-1", "user-1") {
		t.Fatal("owner should match")
	}
	if guard.IsOwner("user-1", "user-2") {
		t.Fatal("different owner should not match")
	}
	if guard.IsOwner("", "") {
		t.Fatal("anonymous must never own anything")
	}
}
