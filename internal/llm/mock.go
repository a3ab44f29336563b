package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned answer for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider serves canned responses instead of calling a real model.
// Tests use it in FIFO mode; the "mock" provider config uses it in Loop
// mode so the app stays playable with no API key at all.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	next      int

	// Loop makes the canned responses cycle forever instead of
	// draining, turning the mock into an offline demo provider.
	Loop bool

	Calls []Request
}

// NewMockProvider creates a MockProvider preloaded with canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// Generate records the request and returns the next canned response.
// With an empty (or, in FIFO mode, exhausted) queue it reports
// ErrProviderUnavailable.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if m.next >= len(m.responses) {
		if !m.Loop || len(m.responses) == 0 {
			return nil, &ErrProviderUnavailable{Err: nil}
		}
		m.next = 0
	}

	resp := m.responses[m.next]
	m.next++

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content: resp.Content,
		Usage:   resp.Usage,
		Model:   "mock",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
