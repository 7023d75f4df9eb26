package forge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilupskalvis/cmr/internal/models"
)

func TestHTTPClient_FileHistory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/repos/acme/widgets/history", r.URL.Path)
		assert.Equal(t, "src/app.ts", r.URL.Query().Get("path"))
		assert.Equal(t, "25", r.URL.Query().Get("window"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		json.NewEncoder(w).Encode(FileHistoryResponse{
			Records: []*models.ChangeRecord{
				{Author: "ann", LinesChanged: 40},
				{Author: "bob", LinesChanged: 5},
			},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "acme/widgets", "tok")
	records, err := c.FileHistory(context.Background(), "src/app.ts", 25)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "ann", records[0].Author)
	assert.Equal(t, 40, records[0].LinesChanged)
}

func TestHTTPClient_ChangeSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/repos/acme/widgets/changesets/42", r.URL.Path)

		json.NewEncoder(w).Encode(models.ChangeSetInfo{
			ID:           "42",
			BaseBranch:   "main",
			TargetBranch: "main",
			SourceBranch: "feature/login",
			OursAuthor:   "ann",
			TheirsAuthor: "bob",
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "acme/widgets", "tok")
	info, err := c.ChangeSet(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "feature/login", info.SourceBranch)
	assert.Equal(t, "bob", info.TheirsAuthor)
}

func TestHTTPClient_ErrorResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "not_found", Message: "no such change-set"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "acme/widgets", "tok")
	_, err := c.ChangeSet(context.Background(), "99")
	require.Error(t, err)

	re, ok := err.(*RemoteError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, re.Status)
	assert.Equal(t, "not_found", re.Code)
}
