package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/kilupskalvis/cmr/internal/models"
)

// SaveAnalysis appends an analysis to the audit log. The full analysis is
// stored as JSON; the summary columns exist for listing and filtering.
func (s *Store) SaveAnalysis(analysis *models.ConflictAnalysis, changeSetID string) error {
	data, err := json.Marshal(analysis)
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT OR REPLACE INTO analyses
		(id, file_path, change_set, region_count, overall_confidence, risk, auto_resolvable, analysis_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		analysis.ID, analysis.FilePath,
		sql.NullString{String: changeSetID, Valid: changeSetID != ""},
		len(analysis.Regions), analysis.OverallConfidence, string(analysis.Risk),
		analysis.AutoResolvable, data, analysis.CreatedAt,
	)
	return err
}

// GetAnalysis retrieves an analysis by full ID
func (s *Store) GetAnalysis(id string) (*models.ConflictAnalysis, error) {
	return s.getAnalysisWhere(`id = ?`, id)
}

// GetAnalysisByShortID retrieves an analysis by ID prefix
func (s *Store) GetAnalysisByShortID(shortID string) (*models.ConflictAnalysis, error) {
	return s.getAnalysisWhere(`id LIKE ?`, shortID+"%")
}

func (s *Store) getAnalysisWhere(where string, arg interface{}) (*models.ConflictAnalysis, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT analysis_json FROM analyses WHERE `+where, arg).Scan(&data)
	if err != nil {
		return nil, err
	}

	var analysis models.ConflictAnalysis
	if err := json.Unmarshal(data, &analysis); err != nil {
		return nil, fmt.Errorf("failed to unmarshal analysis: %w", err)
	}
	return &analysis, nil
}

// AnalysisSummary is one row of the audit log listing
type AnalysisSummary struct {
	ID                string
	FilePath          string
	ChangeSet         string
	RegionCount       int
	OverallConfidence float64
	Risk              models.RiskLevel
	AutoResolvable    bool
	CreatedAt         string
}

// ShortID returns the first 8 characters of the summary's analysis ID
func (a *AnalysisSummary) ShortID() string {
	if len(a.ID) > 8 {
		return a.ID[:8]
	}
	return a.ID
}

// ListAnalyses returns audit log entries in reverse chronological order
func (s *Store) ListAnalyses(limit int) ([]*AnalysisSummary, error) {
	query := `
		SELECT id, file_path, change_set, region_count, overall_confidence, risk, auto_resolvable, created_at
		FROM analyses
		ORDER BY created_at DESC`

	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var summaries []*AnalysisSummary
	for rows.Next() {
		var summary AnalysisSummary
		var changeSet sql.NullString
		var risk string

		if err := rows.Scan(&summary.ID, &summary.FilePath, &changeSet, &summary.RegionCount,
			&summary.OverallConfidence, &risk, &summary.AutoResolvable, &summary.CreatedAt); err != nil {
			return nil, err
		}

		summary.Risk = models.RiskLevel(risk)
		if changeSet.Valid {
			summary.ChangeSet = changeSet.String
		}
		if ts := parseTimestamp(summary.CreatedAt); !ts.IsZero() {
			summary.CreatedAt = ts.Format("Mon Jan 2 15:04:05 2006")
		}
		summaries = append(summaries, &summary)
	}
	return summaries, rows.Err()
}
