package forge

import (
	"github.com/kilupskalvis/cmr/internal/models"
)

// FileHistoryResponse is the forge's answer to a file history query.
type FileHistoryResponse struct {
	Records []*models.ChangeRecord `json:"records"`
}

// ErrorResponse is the standard error payload returned by the forge.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
