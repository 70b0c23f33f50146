package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type calls struct {
	mu      sync.Mutex
	batches [][]string
}

func (c *calls) handler(_ context.Context, changed []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.batches = append(c.batches, changed)
	return nil
}

func (c *calls) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

func (c *calls) last() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.batches[len(c.batches)-1]
}

func start(t *testing.T, files []string, c *calls) (context.CancelFunc, <-chan error) {
	t.Helper()
	w, err := New(files, 100*time.Millisecond, c.handler)
	require.NoError(t, err)
	w.WithLogger(zaptest.NewLogger(t).Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	return cancel, done
}

func stop(t *testing.T, cancel context.CancelFunc, done <-chan error) {
	t.Helper()
	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestWatcher_DebouncesBurst(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "components.json")
	require.NoError(t, os.WriteFile(input, []byte("[]"), 0644))

	c := &calls{}
	cancel, done := start(t, []string{input}, c)
	defer stop(t, cancel, done)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(input, []byte(`[{"name":"x"}]`), 0644))
	}

	require.Eventually(t, func() bool { return c.count() == 1 }, 3*time.Second, 20*time.Millisecond)
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, c.count())
	assert.Equal(t, []string{input}, c.last())
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "components.json")
	require.NoError(t, os.WriteFile(input, []byte("[]"), 0644))

	c := &calls{}
	cancel, done := start(t, []string{input}, c)
	defer stop(t, cancel, done)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))
	time.Sleep(400 * time.Millisecond)
	assert.Equal(t, 0, c.count())
}

func TestWatcher_SeesReplaceByRename(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "components.json")
	require.NoError(t, os.WriteFile(input, []byte("[]"), 0644))

	c := &calls{}
	cancel, done := start(t, []string{input}, c)
	defer stop(t, cancel, done)

	tmp := filepath.Join(dir, ".components.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("[]"), 0644))
	require.NoError(t, os.Rename(tmp, input))

	require.Eventually(t, func() bool { return c.count() == 1 }, 3*time.Second, 20*time.Millisecond)
}

func TestWatcher_GroupsFilesInOneBurst(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "components.json")
	pkg := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(input, []byte("[]"), 0644))
	require.NoError(t, os.WriteFile(pkg, []byte("{}"), 0644))

	c := &calls{}
	cancel, done := start(t, []string{input, pkg}, c)
	defer stop(t, cancel, done)

	require.NoError(t, os.WriteFile(input, []byte("[ ]"), 0644))
	require.NoError(t, os.WriteFile(pkg, []byte(`{"name":"p"}`), 0644))

	require.Eventually(t, func() bool { return c.count() == 1 }, 3*time.Second, 20*time.Millisecond)
	assert.ElementsMatch(t, []string{input, pkg}, c.last())
}

func TestNew_Errors(t *testing.T) {
	_, err := New(nil, 0, func(context.Context, []string) error { return nil })
	assert.Error(t, err)

	_, err = New([]string{filepath.Join(t.TempDir(), "missing", "x.json")}, 0, func(context.Context, []string) error { return nil })
	assert.Error(t, err)
}

func TestWatcher_Files(t *testing.T) {
	dir := t.TempDir()
	w, err := New([]string{filepath.Join(dir, "b.json"), filepath.Join(dir, "a.json")}, 0, func(context.Context, []string) error { return nil })
	require.NoError(t, err)
	defer w.fsw.Close()

	assert.Equal(t, []string{filepath.Join(dir, "a.json"), filepath.Join(dir, "b.json")}, w.Files())
	assert.Equal(t, DefaultDebounce, w.debounce)
}
