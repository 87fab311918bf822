package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ErrorHandlingMode string

const ErrorHandlingExit ErrorHandlingMode = "exit"
const ErrorHandlingContinue ErrorHandlingMode = "continue"

// Runner executes integration tests against a running CODESCAPE API
type Runner struct {
	BaseURL           string
	Client            *http.Client
	Timeout           time.Duration
	Logger            func(format string, args ...interface{})
	ErrorHandlingMode ErrorHandlingMode
}

// NewRunner creates a new test runner
func NewRunner(baseURL string) *Runner {
	return &Runner{
		BaseURL:           strings.TrimSuffix(baseURL, "/"),
		Client:            &http.Client{Timeout: 60 * time.Second},
		Timeout:           30 * time.Second,
		Logger:            func(string, ...interface{}) {},
		ErrorHandlingMode: ErrorHandlingContinue,
	}
}

// LoadTestSuite loads a test suite from a JSON file
func LoadTestSuite(filename string) (TestSuite, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return TestSuite{}, fmt.Errorf("failed to read test file %s: %w", filename, err)
	}

	var suite TestSuite
	if err := json.Unmarshal(content, &suite); err != nil {
		return TestSuite{}, fmt.Errorf("failed to parse JSON in %s: %w", filename, err)
	}

	return suite, nil
}

// LoadTestSuiteWithExpansion loads a test suite and expands it if it's a sequence
func LoadTestSuiteWithExpansion(filename string, casesDir string) ([]TestJob, error) {
	suite, err := LoadTestSuite(filename)
	if err != nil {
		return nil, err
	}

	if !suite.IsSequence() {
		return []TestJob{{
			Name:     suite.Name,
			Suite:    suite,
			CaseFile: filename,
		}}, nil
	}

	var jobs []TestJob
	for _, caseFile := range suite.Cases {
		casePath := filepath.Join(casesDir, caseFile)

		subJobs, err := LoadTestSuiteWithExpansion(casePath, casesDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load case '%s' referenced by sequence '%s': %w", caseFile, suite.Name, err)
		}

		jobs = append(jobs, subJobs...)
	}

	return jobs, nil
}

// RunSuite executes a complete test suite against a fresh session
func (r *Runner) RunSuite(ctx context.Context, suite TestSuite) (TestRunResult, error) {
	start := time.Now()
	result := TestRunResult{
		Job:     TestJob{Name: suite.Name, Suite: suite},
		Results: make([]TestResult, 0, len(suite.Steps)),
	}

	sessionID, err := r.createSession(ctx)
	if err != nil {
		result.Error = fmt.Errorf("failed to create session: %w", err)
		result.Duration = time.Since(start)
		return result, result.Error
	}
	result.Session = sessionID

	var failures int
	for i, step := range suite.Steps {
		r.Logger("    [%d/%d] Running step: %s", i+1, len(suite.Steps), step.Name)
		stepResult := r.runStep(ctx, sessionID, step)
		result.Results = append(result.Results, stepResult)

		if !stepResult.Success {
			failures++
			r.Logger("    ✗ %s: %v", stepResult.StepName, stepResult.Error)
			if r.ErrorHandlingMode == ErrorHandlingExit {
				break
			}
		}
	}

	if err := r.deleteSession(ctx, sessionID); err != nil {
		r.Logger("    failed to delete session %s: %v", sessionID, err)
	}

	result.Duration = time.Since(start)
	if failures > 0 {
		result.Error = fmt.Errorf("%d of %d steps failed", failures, len(suite.Steps))
	}
	return result, result.Error
}

func (r *Runner) runStep(ctx context.Context, sessionID uuid.UUID, step TestStep) TestResult {
	start := time.Now()
	name := step.Name
	if name == "" {
		name = step.Action
	}
	result := TestResult{StepName: name}

	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()

	var err error
	if step.Action == InitializePrompt {
		err = r.doJSON(ctx, http.MethodPost, fmt.Sprintf("/v1/session/%s/initialize", sessionID), nil, http.StatusOK, &result.Response)
	} else {
		body := map[string]string{"action": step.Action}
		err = r.doJSON(ctx, http.MethodPost, fmt.Sprintf("/v1/session/%s/action", sessionID), body, http.StatusOK, &result.Response)
	}
	if err == nil {
		err = r.checkExpectations(ctx, sessionID, step.Expectations, result.Response)
	}

	result.Error = err
	result.Success = err == nil
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) checkExpectations(ctx context.Context, sessionID uuid.UUID, exp Expectations, resp StepResponse) error {
	var problems []string

	if exp.Type != nil && resp.Type != *exp.Type {
		problems = append(problems, fmt.Sprintf("expected type %q, got %q", *exp.Type, resp.Type))
	}
	for _, s := range exp.NarrativeContains {
		if !strings.Contains(resp.Narrative, s) {
			problems = append(problems, fmt.Sprintf("narrative does not contain %q", s))
		}
	}
	for _, s := range exp.NarrativeNotContain {
		if strings.Contains(resp.Narrative, s) {
			problems = append(problems, fmt.Sprintf("narrative unexpectedly contains %q", s))
		}
	}
	suggestions := resp.Suggestions()
	for _, s := range exp.SuggestionsInclude {
		if !slices.Contains(suggestions, s) {
			problems = append(problems, fmt.Sprintf("suggestions %v do not include %q", suggestions, s))
		}
	}
	if exp.SuggestionsExact != nil && !slices.Equal(exp.SuggestionsExact, suggestions) {
		problems = append(problems, fmt.Sprintf("expected suggestions %v, got %v", exp.SuggestionsExact, suggestions))
	}

	if exp.Initialized != nil {
		var session struct {
			Initialized bool `json:"initialized"`
		}
		if err := r.doJSON(ctx, http.MethodGet, "/v1/session/"+sessionID.String(), nil, http.StatusOK, &session); err != nil {
			return fmt.Errorf("failed to read session: %w", err)
		}
		if session.Initialized != *exp.Initialized {
			problems = append(problems, fmt.Sprintf("expected initialized=%v, got %v", *exp.Initialized, session.Initialized))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%s", strings.Join(problems, "; "))
	}
	return nil
}

func (r *Runner) createSession(ctx context.Context) (uuid.UUID, error) {
	var session struct {
		ID uuid.UUID `json:"id"`
	}
	if err := r.doJSON(ctx, http.MethodPost, "/v1/session", nil, http.StatusCreated, &session); err != nil {
		return uuid.Nil, err
	}
	return session.ID, nil
}

func (r *Runner) deleteSession(ctx context.Context, id uuid.UUID) error {
	return r.doJSON(ctx, http.MethodDelete, "/v1/session/"+id.String(), nil, http.StatusNoContent, nil)
}

func (r *Runner) doJSON(ctx context.Context, method, path string, body any, wantStatus int, out any) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.BaseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != wantStatus {
		return fmt.Errorf("%s %s returned status %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
