package keysource

import (
	"context"
	"crypto/rand"
	"fmt"

	domsvc "DormBack/internal/domain/service"
)

const ephemeralKeyLen = 32

// Ephemeral generates a throwaway private key per call. Used in mock
// mode so tests never depend on, or leak, real key material.
type Ephemeral struct{}

// NewEphemeral creates an ephemeral key source.
func NewEphemeral() *Ephemeral { return &Ephemeral{} }

func (e *Ephemeral) PrivateKey(_ context.Context) ([]byte, error) {
	key := make([]byte, ephemeralKeyLen)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("keysource: ephemeral key: %w", err)
	}
	return key, nil
}

var _ domsvc.KeySource = (*Ephemeral)(nil)
