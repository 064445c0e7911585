package chat

import (
	"context"
	"sync"
)

// MockClient is a scripted Client for tests. Each call pops the next queued
// reply; when the queue is empty the last reply repeats.
type MockClient struct {
	mu       sync.Mutex
	replies  []mockReply
	Requests []Request
}

type mockReply struct {
	result Result
	err    error
}

// NewMockClient returns an empty mock; queue replies with Reply or Fail.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reply queues a successful completion whose message content is text.
func (m *MockClient) Reply(text string) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, mockReply{result: Result{
		Message:      Message{Role: RoleAssistant, Content: text},
		Model:        "mock",
		FinishReason: "stop",
	}})
	return m
}

// Fail queues an error reply.
func (m *MockClient) Fail(err error) *MockClient {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, mockReply{err: err})
	return m
}

// Complete records the request and returns the next scripted reply.
func (m *MockClient) Complete(_ context.Context, req Request) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests = append(m.Requests, req)
	if len(m.replies) == 0 {
		return Result{}, ErrNotConfigured
	}
	reply := m.replies[0]
	if len(m.replies) > 1 {
		m.replies = m.replies[1:]
	}
	return reply.result, reply.err
}

var _ Client = (*MockClient)(nil)
