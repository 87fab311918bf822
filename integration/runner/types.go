package runner

import (
	"time"

	"github.com/google/uuid"
)

// InitializePrompt is the step action that sends initializePlayer instead of
// a player action.
const InitializePrompt = "INITIALIZE"

// TestSuite defines a complete integration test scenario
// Can either be a regular test with Steps, or a suite that references other Cases
type TestSuite struct {
	Name  string     `json:"name"`
	Steps []TestStep `json:"steps,omitempty"` // Used for regular tests
	Cases []string   `json:"cases,omitempty"` // Used for suite tests (list of case files)
}

// IsSequence returns true if this is a suite that sequences other cases
func (ts *TestSuite) IsSequence() bool {
	return len(ts.Cases) > 0
}

// TestStep defines a single command and its expected outcome
type TestStep struct {
	Name         string       `json:"name,omitempty"`
	Action       string       `json:"action"`
	Expectations Expectations `json:"expect"`
}

// Expectations defines what to check after a test step executes
type Expectations struct {
	Type                *string  `json:"type,omitempty"`
	NarrativeContains   []string `json:"narrative_contains,omitempty"`
	NarrativeNotContain []string `json:"narrative_not_contains,omitempty"`
	SuggestionsInclude  []string `json:"suggestions_include,omitempty"`
	SuggestionsExact    []string `json:"suggestions_exact,omitempty"`
	Initialized         *bool    `json:"initialized,omitempty"` // session flag after the step
}

// StepResponse is the payload returned for one step.
type StepResponse struct {
	Type              string   `json:"type"`
	Narrative         string   `json:"narrative"`
	Command           string   `json:"command,omitempty"`
	Actions           []string `json:"actions,omitempty"`
	AvailableCommands []string `json:"availableCommands,omitempty"`
}

// Suggestions returns whichever suggestion list the payload carries.
func (r StepResponse) Suggestions() []string {
	if len(r.Actions) > 0 {
		return r.Actions
	}
	return r.AvailableCommands
}

// TestResult contains the outcome of running a test step
type TestResult struct {
	StepName string
	Success  bool
	Error    error
	Response StepResponse
	Duration time.Duration
}

// TestJob is one suite to run, tagged with the file it came from
type TestJob struct {
	Name     string
	Suite    TestSuite
	CaseFile string
}

// TestRunResult aggregates the results of a suite run
type TestRunResult struct {
	Job      TestJob
	Session  uuid.UUID
	Results  []TestResult
	Duration time.Duration
	Error    error
}
