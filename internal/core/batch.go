package core

import (
	"context"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/kilupskalvis/cmr/internal/config"
	"github.com/kilupskalvis/cmr/internal/forge"
	"github.com/kilupskalvis/cmr/internal/models"
)

// ResolveBatch analyzes many files concurrently. Files are independent, so
// each runs on its own goroutine, sharing only the read-through context
// cache. A parse or read failure for one file is recorded and never aborts
// its siblings; the group error is reserved for context cancellation.
func ResolveBatch(ctx context.Context, cfg *config.Config, cache *ContextCache, client forge.ClientInterface, changeSetID string, filePaths []string) (*models.BatchResult, error) {
	result := &models.BatchResult{}
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.MaxParallel)

	for _, filePath := range filePaths {
		filePath := filePath
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			data, err := os.ReadFile(filePath)
			if err != nil {
				mu.Lock()
				result.Failed = append(result.Failed, &models.FileFailure{FilePath: filePath, Reason: err.Error()})
				mu.Unlock()
				return nil
			}

			analysis, err := Resolve(gctx, cfg, cache, client, changeSetID, filePath, string(data))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed = append(result.Failed, &models.FileFailure{FilePath: filePath, Reason: err.Error()})
				return nil
			}
			result.Analyses = append(result.Analyses, analysis)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(result.Analyses, func(i, j int) bool {
		return result.Analyses[i].FilePath < result.Analyses[j].FilePath
	})
	sort.Slice(result.Failed, func(i, j int) bool {
		return result.Failed[i].FilePath < result.Failed[j].FilePath
	})

	return result, nil
}
