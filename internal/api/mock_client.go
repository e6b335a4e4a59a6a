package api

import (
	"context"
	"sync"
)

// MockChatClient is a mock implementation of ChatClientInterface for testing
type MockChatClient struct {
	// Mock return values
	Reply       string
	Found       bool
	SendErr     error
	EndpointVal string

	// Block, when set, is waited on before Send returns.
	Block chan struct{}

	// Call counters/recorders
	mu          sync.Mutex
	SendCalls   int
	LastMessage string
	CloseCalled bool
}

// Ensure MockChatClient implements ChatClientInterface
var _ ChatClientInterface = (*MockChatClient)(nil)

func (m *MockChatClient) Send(ctx context.Context, message string) (string, bool, error) {
	m.mu.Lock()
	m.SendCalls++
	m.LastMessage = message
	block := m.Block
	m.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}
	return m.Reply, m.Found, m.SendErr
}

func (m *MockChatClient) Endpoint() string {
	if m.EndpointVal == "" {
		return ChatEndpoint("")
	}
	return m.EndpointVal
}

func (m *MockChatClient) Close() {
	m.CloseCalled = true
}

// Calls returns how many times Send was invoked
func (m *MockChatClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SendCalls
}
