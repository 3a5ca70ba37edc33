package mocks

import (
	"context"
	"fmt"
	"sync"

	"github.com/phrazzld/hashtag-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, text, model string, count int) generation.Result

	// Results is a script of outcomes returned on successive calls. Once the
	// script runs out, its last entry repeats. Ignored when GenerateFn is set.
	Results []generation.Result

	// GenerateCalls tracks call details for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Texts contains all texts passed to Generate calls
		Texts []string

		// Models contains all models passed to Generate calls
		Models []string

		// Counts contains all requested counts passed to Generate calls
		Counts []int
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, text, model string, count int) generation.Result {
	m.GenerateCalls.mu.Lock()
	call := m.GenerateCalls.Count
	m.GenerateCalls.Count++
	m.GenerateCalls.Texts = append(m.GenerateCalls.Texts, text)
	m.GenerateCalls.Models = append(m.GenerateCalls.Models, model)
	m.GenerateCalls.Counts = append(m.GenerateCalls.Counts, count)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, text, model, count)
	}

	if len(m.Results) == 0 {
		return generation.HardFailure(fmt.Errorf("%w: mock has no scripted results", generation.ErrGenerationFailed))
	}
	if call >= len(m.Results) {
		call = len(m.Results) - 1
	}
	return m.Results[call]
}

// CallCount returns how many times Generate has been called.
func (m *MockGenerator) CallCount() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// NewMockGeneratorWithBatches creates a MockGenerator that returns the given
// batches as successes, one per call.
func NewMockGeneratorWithBatches(batches ...[]string) *MockGenerator {
	results := make([]generation.Result, 0, len(batches))
	for _, b := range batches {
		results = append(results, generation.Success(b))
	}
	return &MockGenerator{Results: results}
}

// NewMockGeneratorWithResults creates a MockGenerator that plays back results.
func NewMockGeneratorWithResults(results ...generation.Result) *MockGenerator {
	return &MockGenerator{Results: results}
}

// MockGeneratorUnavailable creates a MockGenerator whose backend is never reachable
func MockGeneratorUnavailable() *MockGenerator {
	return &MockGenerator{
		Results: []generation.Result{
			generation.HardFailure(fmt.Errorf("%w: connection refused", generation.ErrBackendUnavailable)),
		},
	}
}

// MockGeneratorWithInvalidResponse creates a MockGenerator whose backend always
// answers with something that is not a hashtags document
func MockGeneratorWithInvalidResponse() *MockGenerator {
	return &MockGenerator{
		Results: []generation.Result{
			generation.SoftFailure(fmt.Errorf("%w: missing response field", generation.ErrInvalidResponse)),
		},
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Texts = nil
	m.GenerateCalls.Models = nil
	m.GenerateCalls.Counts = nil
}
