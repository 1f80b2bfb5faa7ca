package auth

import (
	"context"
	"testing"
)

func TestFromContext_Empty(t *testing.T) {
	if identity := FromContext(context.Background()); identity != nil {
		t.Errorf("FromContext() = %v, want nil", identity)
	}
}

func TestWithIdentity_Roundtrip(t *testing.T) {
	ctx := WithIdentity(context.Background(), &Identity{Username: "ana1"})

	identity := FromContext(ctx)
	if identity == nil {
		t.Fatal("FromContext() = nil, want identity")
	}
	if identity.Username != "ana1" {
		t.Errorf("FromContext().Username = %q, want %q", identity.Username, "ana1")
	}
}
