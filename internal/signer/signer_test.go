package signer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"DormBack/pkg/config"
)

func TestMockRoundTrip(t *testing.T) {
	m := NewMock()
	priv := []byte("ephemeral-test-key")
	msg := []byte("DormBack security proof")

	pub, err := m.GenerateKeypair(priv)
	if err != nil {
		t.Fatalf("keypair: %v", err)
	}
	sig, err := m.Sign(context.Background(), priv, msg)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	ok, err := m.Verify(context.Background(), pub, msg, sig)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected signature to verify")
	}
}

func TestMockDeterministic(t *testing.T) {
	m := NewMock()
	priv := []byte("key")
	msg := []byte("msg")

	a, err := m.Sign(context.Background(), priv, msg)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	b, err := m.Sign(context.Background(), priv, msg)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Fatalf("mock signatures are not deterministic")
	}
}

func TestMockRejectsTamperedMessage(t *testing.T) {
	m := NewMock()
	priv := []byte("key")

	pub, _ := m.GenerateKeypair(priv)
	sig, _ := m.Sign(context.Background(), priv, []byte("original"))

	ok, err := m.Verify(context.Background(), pub, []byte("tampered"), sig)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatalf("tampered message must not verify")
	}
}

func TestDelegateVerify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/verify" {
			http.NotFound(w, r)
			return
		}
		var req struct {
			Algorithm string `json:"algorithm"`
			Message   string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.Algorithm != "Falcon-1024" {
			http.Error(w, "unexpected algorithm", http.StatusBadRequest)
			return
		}
		msg, _ := base64.StdEncoding.DecodeString(req.Message)
		_ = json.NewEncoder(w).Encode(map[string]bool{"valid": string(msg) == "good"})
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.Verifier.URL = srv.URL
	d := NewDelegate(cfg)

	ok, err := d.Verify(context.Background(), []byte("pub"), []byte("good"), []byte("sig"))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected valid verification")
	}

	ok, err = d.Verify(context.Background(), []byte("pub"), []byte("bad"), []byte("sig"))
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if ok {
		t.Fatalf("expected invalid verification")
	}
}

func TestDelegateRequiresURL(t *testing.T) {
	d := NewDelegate(&config.Config{})
	if _, err := d.Verify(context.Background(), nil, nil, nil); err == nil {
		t.Fatalf("expected error without verifier url")
	}
}
