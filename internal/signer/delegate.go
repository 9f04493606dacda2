package signer

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	domsvc "DormBack/internal/domain/service"
	"DormBack/pkg/config"
	xhttp "DormBack/pkg/http"
)

// Delegate hands keypair generation, signing and verification to the
// external quantum-resistant verifier service over HTTP. The harness
// never implements the algorithm itself; in integration mode this is
// the real proof path.
type Delegate struct {
	baseURL   string
	algorithm string
	client    *xhttp.Client
}

// NewDelegate builds a delegate signer from verifier config.
func NewDelegate(cfg *config.Config) *Delegate {
	timeout := cfg.Verifier.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	alg := cfg.Verifier.Algorithm
	if alg == "" {
		alg = "Falcon-1024"
	}
	return &Delegate{
		baseURL:   cfg.Verifier.URL,
		algorithm: alg,
		client:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type keypairReq struct {
	Algorithm  string `json:"algorithm"`
	PrivateKey string `json:"private_key"`
}

type keypairResp struct {
	PublicKey string `json:"public_key"`
}

type signReq struct {
	Algorithm  string `json:"algorithm"`
	PrivateKey string `json:"private_key"`
	Message    string `json:"message"`
}

type signResp struct {
	Signature string `json:"signature"`
}

type verifyReq struct {
	Algorithm string `json:"algorithm"`
	PublicKey string `json:"public_key"`
	Message   string `json:"message"`
	Signature string `json:"signature"`
}

type verifyResp struct {
	Valid bool `json:"valid"`
}

func (d *Delegate) GenerateKeypair(priv []byte) ([]byte, error) {
	var resp keypairResp
	err := d.postJSON(context.Background(), "/v1/keypair", keypairReq{
		Algorithm:  d.algorithm,
		PrivateKey: base64.StdEncoding.EncodeToString(priv),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("delegate keypair: %w", err)
	}
	pub, err := base64.StdEncoding.DecodeString(resp.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("delegate keypair: decode public key: %w", err)
	}
	return pub, nil
}

func (d *Delegate) Sign(ctx context.Context, priv, msg []byte) ([]byte, error) {
	var resp signResp
	err := d.postJSON(ctx, "/v1/sign", signReq{
		Algorithm:  d.algorithm,
		PrivateKey: base64.StdEncoding.EncodeToString(priv),
		Message:    base64.StdEncoding.EncodeToString(msg),
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("delegate sign: %w", err)
	}
	sig, err := base64.StdEncoding.DecodeString(resp.Signature)
	if err != nil {
		return nil, fmt.Errorf("delegate sign: decode signature: %w", err)
	}
	return sig, nil
}

func (d *Delegate) Verify(ctx context.Context, pub, msg, sig []byte) (bool, error) {
	var resp verifyResp
	err := d.postJSON(ctx, "/v1/verify", verifyReq{
		Algorithm: d.algorithm,
		PublicKey: base64.StdEncoding.EncodeToString(pub),
		Message:   base64.StdEncoding.EncodeToString(msg),
		Signature: base64.StdEncoding.EncodeToString(sig),
	}, &resp)
	if err != nil {
		return false, fmt.Errorf("delegate verify: %w", err)
	}
	return resp.Valid, nil
}

func (d *Delegate) Algorithm() string { return d.algorithm }

func (d *Delegate) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	if d.client == nil || d.baseURL == "" {
		return fmt.Errorf("verifier http client not initialized")
	}
	err := d.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    d.baseURL + path,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
		Body: payload,
	}, dest)
	if err != nil {
		return fmt.Errorf("post %s: %w", path, err)
	}
	return nil
}

var _ domsvc.Signer = (*Delegate)(nil)
