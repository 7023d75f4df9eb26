package forge

import (
	"context"
	"fmt"
	"sync"

	"github.com/kilupskalvis/cmr/internal/models"
)

// MockClient is a mock implementation of ClientInterface for testing.
// Safe for concurrent use so batch tests can share one instance.
type MockClient struct {
	mu sync.Mutex

	// History stores change records by file path
	History map[string][]*models.ChangeRecord
	// ChangeSets stores change-set metadata by ID
	ChangeSets map[string]*models.ChangeSetInfo
	// Err can be set to make methods return an error
	Err error
	// Calls counts invocations per method name
	Calls map[string]int
}

// NewMockClient creates a new MockClient for testing.
func NewMockClient() *MockClient {
	return &MockClient{
		History:    make(map[string][]*models.ChangeRecord),
		ChangeSets: make(map[string]*models.ChangeSetInfo),
		Calls:      make(map[string]int),
	}
}

// AddHistory sets the change records returned for a file path.
func (m *MockClient) AddHistory(filePath string, records ...*models.ChangeRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.History[filePath] = append(m.History[filePath], records...)
}

// AddChangeSet registers change-set metadata.
func (m *MockClient) AddChangeSet(info *models.ChangeSetInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ChangeSets[info.ID] = info
}

// FileHistory returns the registered records for a file, truncated to window.
func (m *MockClient) FileHistory(ctx context.Context, filePath string, window int) ([]*models.ChangeRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["FileHistory"]++
	if m.Err != nil {
		return nil, m.Err
	}
	records := m.History[filePath]
	if window > 0 && len(records) > window {
		records = records[:window]
	}
	return records, nil
}

// ChangeSet returns the registered metadata for a change-set ID.
func (m *MockClient) ChangeSet(ctx context.Context, changeSetID string) (*models.ChangeSetInfo, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls["ChangeSet"]++
	if m.Err != nil {
		return nil, m.Err
	}
	info, ok := m.ChangeSets[changeSetID]
	if !ok {
		return nil, fmt.Errorf("change-set %s not found", changeSetID)
	}
	return info, nil
}
