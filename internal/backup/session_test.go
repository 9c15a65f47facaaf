package backup

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_SnapshotsOnce(t *testing.T) {
	dir := makeTree(t)
	s := NewSession(NewManager())

	first, taken, err := s.Ensure(dir)
	require.NoError(t, err)
	assert.True(t, taken)
	require.NotNil(t, first)

	// Simulate a generator run overwriting the tree.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "commands", "fix.md"), []byte("generated"), 0o644))

	second, taken, err := s.Ensure(dir)
	require.NoError(t, err)
	assert.False(t, taken)
	assert.Same(t, first, second)

	got, err := os.ReadFile(filepath.Join(dir+".backup", "commands", "fix.md"))
	require.NoError(t, err)
	assert.Equal(t, "fix", string(got))
}

func TestSession_Reset(t *testing.T) {
	dir := makeTree(t)
	s := NewSession(NewManager())

	_, _, err := s.Ensure(dir)
	require.NoError(t, err)

	s.Reset()

	_, taken, err := s.Ensure(dir)
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestSession_Concurrent(t *testing.T) {
	dir := makeTree(t)
	s := NewSession(NewManager())

	var wg sync.WaitGroup
	results := make([]bool, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, taken, err := s.Ensure(dir)
			assert.NoError(t, err)
			results[i] = taken
		}()
	}
	wg.Wait()

	count := 0
	for _, taken := range results {
		if taken {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
