package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Outcome int

const (
	Unknown Outcome = iota
	Success
	Failure
	Unstable
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	case Unstable:
		return "UNSTABLE"
	default:
		return "UNKNOWN"
	}
}

// ParseOutcome maps a CI host result name to an Outcome.
// Aborted, not built and in-progress builds are all Unknown.
func ParseOutcome(s string) Outcome {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "SUCCESS":
		return Success
	case "FAILURE", "FAILED":
		return Failure
	case "UNSTABLE":
		return Unstable
	default:
		return Unknown
	}
}

func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Outcome) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	*o = ParseOutcome(s)
	return nil
}

type TestCounts struct {
	Total   int `json:"total"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

func (t TestCounts) Passed() int {
	return t.Total - t.Failed - t.Skipped
}

func (t TestCounts) Validate() error {
	if t.Total < 0 || t.Failed < 0 || t.Skipped < 0 {
		return fmt.Errorf("test counts must not be negative: %d total, %d failed, %d skipped", t.Total, t.Failed, t.Skipped)
	}
	if t.Passed() < 0 {
		return fmt.Errorf("failed and skipped tests exceed the total: %d total, %d failed, %d skipped", t.Total, t.Failed, t.Skipped)
	}
	return nil
}

// Record is everything the CI host knows about a finished build.
// PreviousOutcome is nil for the first build of a project,
// TestCounts is nil when the build published no test results.
type Record struct {
	Outcome         Outcome     `json:"result"`
	PreviousOutcome *Outcome    `json:"previousResult,omitempty"`
	ProjectName     string      `json:"project"`
	BuildNumber     int         `json:"number"`
	BuildURL        string      `json:"url"`
	TestCounts      *TestCounts `json:"tests,omitempty"`
}

func (r Record) Validate() error {
	if r.ProjectName == "" {
		return fmt.Errorf("project name is required")
	}
	if r.BuildNumber < 1 {
		return fmt.Errorf("build number must be at least 1, got %d", r.BuildNumber)
	}
	if r.TestCounts != nil {
		return r.TestCounts.Validate()
	}
	return nil
}

const StatusSkipped = "skipped"
const StatusDelivered = "delivered"
const StatusFailed = "failed"

// Build is a processed build event as it is persisted
type Build struct {
	ID             string `json:"id"  meddler:"id"`
	Project        string `json:"project"  meddler:"project"`
	Number         int    `json:"number"  meddler:"number"`
	URL            string `json:"url"  meddler:"url"`
	Result         string `json:"result"  meddler:"result"`
	PreviousResult string `json:"previousResult,omitempty"  meddler:"previous_result"`
	Created        int64  `json:"created"  meddler:"created"`
	Notified       bool   `json:"notified"  meddler:"notified"`
	Transition     string `json:"transition,omitempty"  meddler:"transition"`
	Status         string `json:"status"  meddler:"status"`
	StatusDesc     string `json:"statusDesc,omitempty"  meddler:"status_desc"`
}
