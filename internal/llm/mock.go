package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider. It returns canned responses in
// FIFO order and records all requests. Once the queue is drained it answers
// with Fallback when set, else ErrProviderUnavailable.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []Request

	// Fallback produces content for requests beyond the canned responses.
	Fallback func(Request) (json.RawMessage, error)
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewOfflineProvider returns a MockProvider that answers every request with
// placeholder JSON shaped by the request schema. It lets deck generation be
// tried without an API key.
func NewOfflineProvider() *MockProvider {
	return &MockProvider{Fallback: SampleFromSchema}
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	if len(m.responses) == 0 {
		if m.Fallback == nil {
			return nil, &ErrProviderUnavailable{Err: nil}
		}
		content, err := m.Fallback(req)
		if err != nil {
			return nil, err
		}
		return &Response{Content: content, Model: "mock", StopReason: StopEnd}, nil
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]

	if resp.Err != nil {
		return nil, resp.Err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: StopEnd,
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

// sampleArrayLen is how many items SampleFromSchema puts in arrays without
// a larger minItems.
const sampleArrayLen = 3

// SampleFromSchema builds a JSON value satisfying the request schema: every
// property is filled, strings are "<property> <n>" and arrays hold a few
// items. Requests without a schema get an empty object.
func SampleFromSchema(req Request) (json.RawMessage, error) {
	if req.Schema == nil {
		return json.RawMessage(`{}`), nil
	}
	v := sampleValue(req.Schema.Definition, req.Schema.Name, 1)
	out, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode sample: %w", err)
	}
	return out, nil
}

func sampleValue(def map[string]any, name string, n int) any {
	switch def["type"] {
	case "object":
		props, _ := def["properties"].(map[string]any)
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		obj := make(map[string]any, len(keys))
		for _, k := range keys {
			child, _ := props[k].(map[string]any)
			obj[k] = sampleValue(child, k, n)
		}
		return obj
	case "array":
		items, _ := def["items"].(map[string]any)
		count := sampleArrayLen
		if mi, ok := def["minItems"].(int); ok && mi > count {
			count = mi
		}
		arr := make([]any, count)
		for i := range arr {
			arr[i] = sampleValue(items, name, i+1)
		}
		return arr
	case "integer", "number":
		return n
	case "boolean":
		return true
	default:
		if enum, ok := def["enum"].([]any); ok && len(enum) > 0 {
			return enum[0]
		}
		return fmt.Sprintf("%s %d", name, n)
	}
}
