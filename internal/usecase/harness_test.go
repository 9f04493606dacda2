package usecase

import (
	"context"
	"errors"
	"testing"

	"DormBack/internal/domain/models"
	"DormBack/internal/keysource"
	"DormBack/internal/signer"
)

func TestHarnessRunAllChecksPass(t *testing.T) {
	runner := NewHarnessRunner(signer.NewMock(), keysource.NewEphemeral(), newFakeMetrics(), newTestLogger(t), "mock")

	report := runner.Run(context.Background())
	if !report.Passed() {
		t.Fatalf("report failed: %+v", report.Checks)
	}
	if report.Mode != "mock" {
		t.Fatalf("mode = %q, want mock", report.Mode)
	}
	if len(report.Checks) != 3 {
		t.Fatalf("expected 3 checks, got %d", len(report.Checks))
	}

	byName := make(map[string]models.CheckResult)
	for _, c := range report.Checks {
		byName[c.Name] = c
	}
	if got := byName[CheckSignatureProof].Status; got != models.CheckPass {
		t.Fatalf("signature proof status = %q", got)
	}
	if got := byName[CheckHybridProof].Status; got != models.CheckPass {
		t.Fatalf("hybrid proof status = %q", got)
	}
	if got := byName[CheckPredictionAccuracy].Status; got != models.CheckSkipped {
		t.Fatalf("prediction accuracy status = %q, want skipped", got)
	}
}

func TestHarnessRecordsCheckMetrics(t *testing.T) {
	metrics := newFakeMetrics()
	runner := NewHarnessRunner(signer.NewMock(), keysource.NewEphemeral(), metrics, newTestLogger(t), "mock")
	runner.Run(context.Background())

	if metrics.checks[CheckSignatureProof] != models.CheckPass {
		t.Fatalf("signature metric = %q", metrics.checks[CheckSignatureProof])
	}
	if metrics.checks[CheckPredictionAccuracy] != models.CheckSkipped {
		t.Fatalf("prediction metric = %q", metrics.checks[CheckPredictionAccuracy])
	}
}

type failingSigner struct{ *signer.Mock }

func (failingSigner) Sign(context.Context, []byte, []byte) ([]byte, error) {
	return nil, errors.New("signer backend down")
}

func TestHarnessSignerFailureReportsFail(t *testing.T) {
	runner := NewHarnessRunner(failingSigner{signer.NewMock()}, keysource.NewEphemeral(), newFakeMetrics(), newTestLogger(t), "integration")

	report := runner.Run(context.Background())
	if report.Passed() {
		t.Fatal("expected report to fail")
	}
	for _, c := range report.Checks {
		if c.Name == CheckSignatureProof {
			if c.Status != models.CheckFail {
				t.Fatalf("signature status = %q, want fail", c.Status)
			}
			if c.Detail == "" {
				t.Fatal("expected failure detail")
			}
		}
	}
}

func TestHarnessMissingKeyReportsFail(t *testing.T) {
	t.Setenv(keysource.EnvVar, "")
	runner := NewHarnessRunner(signer.NewMock(), keysource.NewEnv(), newFakeMetrics(), newTestLogger(t), "integration")

	// Env source with no variable set must surface as a failed check,
	// never a panic or a silent pass.
	report := runner.Run(context.Background())
	for _, c := range report.Checks {
		if c.Name == CheckSignatureProof && c.Status != models.CheckFail {
			t.Fatalf("signature status = %q, want fail", c.Status)
		}
	}
}
