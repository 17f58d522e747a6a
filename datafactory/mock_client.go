package datafactory

import (
	"context"
	"fmt"
)

// MockClient is an in-memory implementation of datafactory.Client for unit tests.
type MockClient struct {
	// PreviewData is what ExecutePreview returns.
	PreviewData string

	CreateError  error
	AddFlowError error
	ExecuteError error
	DeleteError  error

	// CreatedSessions records session ids handed out by CreateDebugSession.
	CreatedSessions []string

	// AddedFlows records AddDataFlow calls as "session/flow".
	AddedFlows []string

	// ExecutedPreviews records ExecutePreview calls as "session/stream".
	ExecutedPreviews []string

	// DeletedSessions records DeleteDebugSession calls.
	DeletedSessions []string

	nextSession int
}

// NewMockClient returns an empty MockClient.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// CreateDebugSession hands out a sequential session id.
func (m *MockClient) CreateDebugSession(_ context.Context) (string, error) {
	if m.CreateError != nil {
		return "", m.CreateError
	}
	m.nextSession++
	id := fmt.Sprintf("session-%d", m.nextSession)
	m.CreatedSessions = append(m.CreatedSessions, id)
	return id, nil
}

// AddDataFlow records the call.
func (m *MockClient) AddDataFlow(_ context.Context, sessionID, dataFlowName string) error {
	if m.AddFlowError != nil {
		return m.AddFlowError
	}
	m.AddedFlows = append(m.AddedFlows, sessionID+"/"+dataFlowName)
	return nil
}

// ExecutePreview records the call and returns PreviewData.
func (m *MockClient) ExecutePreview(_ context.Context, sessionID, streamName string, _ int32) (string, error) {
	if m.ExecuteError != nil {
		return "", m.ExecuteError
	}
	m.ExecutedPreviews = append(m.ExecutedPreviews, sessionID+"/"+streamName)
	return m.PreviewData, nil
}

// DeleteDebugSession records the call.
func (m *MockClient) DeleteDebugSession(_ context.Context, sessionID string) error {
	if m.DeleteError != nil {
		return m.DeleteError
	}
	m.DeletedSessions = append(m.DeletedSessions, sessionID)
	return nil
}
