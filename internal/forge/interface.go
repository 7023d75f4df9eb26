package forge

import (
	"context"

	"github.com/kilupskalvis/cmr/internal/models"
)

// ClientInterface defines the contract for hosting-platform lookups.
// This interface enables mocking for testing the core package.
type ClientInterface interface {
	// FileHistory returns historical change records for a file, newest first,
	// limited to the given window of commits.
	FileHistory(ctx context.Context, filePath string, window int) ([]*models.ChangeRecord, error)

	// ChangeSet returns branch names and the two authors of a change-set.
	ChangeSet(ctx context.Context, changeSetID string) (*models.ChangeSetInfo, error)
}

// Verify implementations satisfy ClientInterface at compile time
var (
	_ ClientInterface = (*HTTPClient)(nil)
	_ ClientInterface = (*RetryClient)(nil)
	_ ClientInterface = (*MockClient)(nil)
)
