package keysource

import (
	"context"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	domsvc "DormBack/internal/domain/service"
)

// Env reads the private key from the environment. Used in integration
// mode, where the key is injected by the CI secret store.
type Env struct{}

// NewEnv creates an environment-backed key source.
func NewEnv() *Env { return &Env{} }

func (e *Env) PrivateKey(_ context.Context) ([]byte, error) {
	v := os.Getenv(EnvVar)
	if v == "" {
		return nil, ErrKeyRequired
	}
	v = strings.TrimPrefix(v, "0x")
	key, err := hex.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("keysource: %s is not valid hex: %w", EnvVar, err)
	}
	return key, nil
}

var _ domsvc.KeySource = (*Env)(nil)
