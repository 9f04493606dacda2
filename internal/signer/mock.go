package signer

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"fmt"

	domsvc "DormBack/internal/domain/service"
)

const mockAlgorithm = "mock-hmac-sha256"

// Mock is the CI stand-in for the quantum-resistant signature scheme.
// It is fully deterministic: the public key is a hash of the private key
// and signatures are keyed digests, so sign/verify round-trips always
// agree without any external dependency. It offers no security.
type Mock struct{}

// NewMock creates a mock signer.
func NewMock() *Mock { return &Mock{} }

func (m *Mock) GenerateKeypair(priv []byte) ([]byte, error) {
	if len(priv) == 0 {
		return nil, fmt.Errorf("mock keypair: empty private key")
	}
	h := sha256.New()
	h.Write([]byte("dormback/mock-pub/"))
	h.Write(priv)
	return h.Sum(nil), nil
}

func (m *Mock) Sign(_ context.Context, priv, msg []byte) ([]byte, error) {
	pub, err := m.GenerateKeypair(priv)
	if err != nil {
		return nil, fmt.Errorf("mock sign: %w", err)
	}
	mac := hmac.New(sha256.New, pub)
	mac.Write(msg)
	return mac.Sum(nil), nil
}

func (m *Mock) Verify(_ context.Context, pub, msg, sig []byte) (bool, error) {
	if len(pub) == 0 {
		return false, fmt.Errorf("mock verify: empty public key")
	}
	mac := hmac.New(sha256.New, pub)
	mac.Write(msg)
	return hmac.Equal(sig, mac.Sum(nil)), nil
}

func (m *Mock) Algorithm() string { return mockAlgorithm }

var _ domsvc.Signer = (*Mock)(nil)
