package models

import "time"

// Check outcomes. Skipped marks checks the protocol has not implemented
// yet; they are reported, never silently passed.
const (
	CheckPass    = "pass"
	CheckFail    = "fail"
	CheckSkipped = "skipped"
)

// CheckResult is the outcome of a single harness check.
type CheckResult struct {
	Name    string        `json:"name"`
	Status  string        `json:"status"`
	Detail  string        `json:"detail,omitempty"`
	Elapsed time.Duration `json:"elapsed_ns"`
}

// HarnessReport aggregates one full harness run.
type HarnessReport struct {
	Mode      string        `json:"mode"`
	Timestamp time.Time     `json:"timestamp"`
	Checks    []CheckResult `json:"checks"`
}

// Passed reports whether no check failed. Skipped checks do not count
// as failures.
func (r *HarnessReport) Passed() bool {
	for _, c := range r.Checks {
		if c.Status == CheckFail {
			return false
		}
	}
	return true
}

// Run states for async fixture generation.
const (
	RunQueued  = "queued"
	RunRunning = "running"
	RunDone    = "done"
	RunFailed  = "failed"
)

// FixtureRun tracks an async generation run.
type FixtureRun struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	Length    int       `json:"length"`
	Start     time.Time `json:"start"`
	Backend   string    `json:"backend"`
	State     string    `json:"state"`
	Error     string    `json:"error,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
