package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/kilupskalvis/cmr/internal/config"
	"github.com/kilupskalvis/cmr/internal/forge"
	"github.com/kilupskalvis/cmr/internal/models"
)

// Built-in critical path patterns: entry points, configuration, and core
// library code. Matched as path substrings after slash normalization.
var criticalPatterns = []string{
	"src/config/",
	"src/core/",
	"src/index.",
	"src/main.",
	"conf/",
	"config.",
	"settings.",
	".github/workflows/",
	"go.mod",
	"package.json",
	"dockerfile",
	"makefile",
}

// ContextCache is the per-session read-through cache of merge contexts, keyed
// by (repository, change-set, file). Population is check-then-fill: a racing
// fill recomputes the same idempotent value, which is tolerated rather than
// locked around the forge calls.
type ContextCache struct {
	mu      sync.Mutex
	entries map[string]*models.MergeContext
}

// NewContextCache creates an empty session cache.
func NewContextCache() *ContextCache {
	return &ContextCache{entries: make(map[string]*models.MergeContext)}
}

func cacheKey(repository, changeSetID, filePath string) string {
	return fmt.Sprintf("%s|%s|%s", repository, changeSetID, filePath)
}

// Get returns the cached context for a key, or nil.
func (c *ContextCache) Get(repository, changeSetID, filePath string) *models.MergeContext {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries[cacheKey(repository, changeSetID, filePath)]
}

// Put stores a context. Contexts are immutable after construction, so a
// redundant overwrite under a race is harmless.
func (c *ContextCache) Put(repository, changeSetID, filePath string, mc *models.MergeContext) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(repository, changeSetID, filePath)] = mc
}

// BuildContext produces the merge context for one file, consulting the cache
// first. Forge failures and timeouts degrade to defaults per warning; they are
// never fatal.
func BuildContext(ctx context.Context, cfg *config.Config, cache *ContextCache, client forge.ClientInterface, changeSetID, filePath string) *models.MergeContext {
	if mc := cache.Get(cfg.Repository, changeSetID, filePath); mc != nil {
		return mc
	}

	mc := &models.MergeContext{
		AuthorExpertise:     map[string]float64{},
		FileCriticality:     isCriticalPath(filePath, cfg.CriticalPatterns),
		TestCoveragePercent: estimateTestCoverage(filePath),
	}

	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout())
	defer cancel()

	info, err := client.ChangeSet(fetchCtx, changeSetID)
	if err != nil {
		mc.Warnings = append(mc.Warnings, fmt.Sprintf("change-set metadata unavailable: %v", err))
	} else {
		mc.Branches = models.BranchInfo{Base: info.BaseBranch, Target: info.TargetBranch, Source: info.SourceBranch}
		mc.OursAuthor = info.OursAuthor
		mc.TheirsAuthor = info.TheirsAuthor
	}

	records, err := client.FileHistory(fetchCtx, filePath, cfg.HistoryWindow)
	if err != nil {
		mc.Warnings = append(mc.Warnings, fmt.Sprintf("file history unavailable: %v", err))
	} else {
		mc.AuthorExpertise = computeExpertise(records)
		mc.RecentChangeFrequency = len(records)
	}

	cache.Put(cfg.Repository, changeSetID, filePath, mc)
	return mc
}

// computeExpertise scores each author in [0,1] as the unweighted average of
// two max-normalized signals: commit count and total lines changed.
func computeExpertise(records []*models.ChangeRecord) map[string]float64 {
	commits := make(map[string]int)
	lines := make(map[string]int)
	for _, rec := range records {
		commits[rec.Author]++
		lines[rec.Author] += rec.LinesChanged
	}

	maxCommits := 0
	maxLines := 0
	for author := range commits {
		if commits[author] > maxCommits {
			maxCommits = commits[author]
		}
		if lines[author] > maxLines {
			maxLines = lines[author]
		}
	}

	expertise := make(map[string]float64, len(commits))
	for author := range commits {
		commitScore := 0.0
		if maxCommits > 0 {
			commitScore = float64(commits[author]) / float64(maxCommits)
		}
		lineScore := 0.0
		if maxLines > 0 {
			lineScore = float64(lines[author]) / float64(maxLines)
		}
		expertise[author] = (commitScore + lineScore) / 2
	}
	return expertise
}

// isCriticalPath reports whether the file path matches a built-in or
// configured critical pattern.
func isCriticalPath(filePath string, extra []string) bool {
	normalized := strings.ToLower(filepath.ToSlash(filePath))
	for _, pattern := range criticalPatterns {
		if strings.Contains(normalized, pattern) {
			return true
		}
	}
	for _, pattern := range extra {
		if pattern != "" && strings.Contains(normalized, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// testCoverageEstimate is the soft coverage signal assigned when a companion
// test file exists next to the conflicted file. It is an estimate, not ground
// truth.
const testCoverageEstimate = 80.0

var testSuffixes = []string{"_test", ".test", ".spec"}

// estimateTestCoverage checks for a sibling test file of the conflicted file.
func estimateTestCoverage(filePath string) float64 {
	ext := filepath.Ext(filePath)
	stem := strings.TrimSuffix(filePath, ext)
	for _, suffix := range testSuffixes {
		if _, err := os.Stat(stem + suffix + ext); err == nil {
			return testCoverageEstimate
		}
	}
	return 0
}
