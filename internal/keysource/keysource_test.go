package keysource

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestEnvMissingKey(t *testing.T) {
	t.Setenv(EnvVar, "")
	_, err := NewEnv().PrivateKey(context.Background())
	if !errors.Is(err, ErrKeyRequired) {
		t.Fatalf("expected ErrKeyRequired, got %v", err)
	}
}

func TestEnvHexKey(t *testing.T) {
	t.Setenv(EnvVar, "0xdeadbeef")
	key, err := NewEnv().PrivateKey(context.Background())
	if err != nil {
		t.Fatalf("private key: %v", err)
	}
	if !bytes.Equal(key, []byte{0xde, 0xad, 0xbe, 0xef}) {
		t.Fatalf("unexpected key %x", key)
	}
}

func TestEnvRejectsNonHex(t *testing.T) {
	t.Setenv(EnvVar, "not-hex")
	if _, err := NewEnv().PrivateKey(context.Background()); err == nil {
		t.Fatalf("expected error for non-hex key")
	}
}

func TestEphemeralKeysAreFresh(t *testing.T) {
	e := NewEphemeral()
	a, err := e.PrivateKey(context.Background())
	if err != nil {
		t.Fatalf("private key: %v", err)
	}
	b, err := e.PrivateKey(context.Background())
	if err != nil {
		t.Fatalf("private key: %v", err)
	}
	if len(a) != ephemeralKeyLen || len(b) != ephemeralKeyLen {
		t.Fatalf("unexpected key lengths %d/%d", len(a), len(b))
	}
	if bytes.Equal(a, b) {
		t.Fatalf("ephemeral keys repeated")
	}
}
