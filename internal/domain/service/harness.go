package service

import (
	"context"
	"time"

	"DormBack/internal/domain/models"
)

// SeriesGenerator produces the reproducible synthetic dataset.
type SeriesGenerator interface {
	Generate(seed int64, length int, start time.Time) (*models.MarketSeries, error)
}

// Signer is the proof-system abstraction. The mock variant is fully
// deterministic; the delegate variant hands verification to the real
// quantum-resistant verifier service.
type Signer interface {
	GenerateKeypair(priv []byte) (pub []byte, err error)
	Sign(ctx context.Context, priv, msg []byte) ([]byte, error)
	Verify(ctx context.Context, pub, msg, sig []byte) (bool, error)
	Algorithm() string
}

// KeySource supplies the private key material for a harness run.
type KeySource interface {
	PrivateKey(ctx context.Context) ([]byte, error)
}
