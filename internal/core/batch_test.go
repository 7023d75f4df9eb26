package core

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestResolveBatch_PartialFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.ts", "<<<<<<< a\nx\n=======\ny\n>>>>>>> b\n")
	malformed := writeFile(t, dir, "bad.ts", "text\n>>>>>>> stray\n")
	clean := writeFile(t, dir, "clean.ts", "no conflicts\n")
	missing := filepath.Join(dir, "missing.ts")

	result, err := ResolveBatch(context.Background(), newTestConfig(), NewContextCache(), newTestForge(), "42",
		[]string{good, malformed, clean, missing})
	require.NoError(t, err)

	// A malformed file never aborts its siblings
	require.Len(t, result.Analyses, 2)
	require.Len(t, result.Failed, 2)

	paths := []string{result.Analyses[0].FilePath, result.Analyses[1].FilePath}
	assert.Contains(t, paths, good)
	assert.Contains(t, paths, clean)

	for _, failure := range result.Failed {
		assert.NotEmpty(t, failure.Reason)
	}
}

func TestResolveBatch_SharesContextCache(t *testing.T) {
	dir := t.TempDir()
	var files []string
	for _, name := range []string{"a.ts", "b.ts", "c.ts"} {
		files = append(files, writeFile(t, dir, name, "<<<<<<< a\nx\n=======\ny\n>>>>>>> b\n"))
	}

	mock := newTestForge()
	cache := NewContextCache()
	_, err := ResolveBatch(context.Background(), newTestConfig(), cache, mock, "42", files)
	require.NoError(t, err)

	// Run again: every context is already cached, no further forge calls
	calls := mock.Calls["FileHistory"]
	_, err = ResolveBatch(context.Background(), newTestConfig(), cache, mock, "42", files)
	require.NoError(t, err)
	assert.Equal(t, calls, mock.Calls["FileHistory"])
}

func TestResolveBatch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	file := writeFile(t, dir, "a.ts", "x\n")

	_, err := ResolveBatch(ctx, newTestConfig(), NewContextCache(), newTestForge(), "42", []string{file})
	assert.Error(t, err)
}
