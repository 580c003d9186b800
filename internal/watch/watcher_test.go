package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func startWatcher(t *testing.T, path string, h Handler) (cancel func()) {
	t.Helper()
	w, err := New(path, h, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	return func() {
		stop()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestSourceWatcher_DebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.md")
	require.NoError(t, os.WriteFile(src, []byte("## A\n"), 0o600))

	var calls atomic.Int32
	got := make(chan string, 4)
	cancel := startWatcher(t, src, func(_ context.Context, path string) error {
		calls.Add(1)
		got <- path
		return nil
	})
	defer cancel()

	for i := range 3 {
		require.NoError(t, os.WriteFile(src, []byte("## A\n"+string(rune('a'+i))+"\n"), 0o600))
	}

	select {
	case path := <-got:
		abs, _ := filepath.Abs(src)
		assert.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("handler was not called")
	}

	time.Sleep(200 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSourceWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.md")
	require.NoError(t, os.WriteFile(src, []byte("## A\n"), 0o600))

	var calls atomic.Int32
	cancel := startWatcher(t, src, func(context.Context, string) error {
		calls.Add(1)
		return nil
	})
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "00-toc.md"), []byte("x"), 0o600))
	time.Sleep(250 * time.Millisecond)
	assert.Zero(t, calls.Load())
}

func TestSourceWatcher_HandlerErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "big.md")
	require.NoError(t, os.WriteFile(src, []byte("## A\n"), 0o600))

	got := make(chan struct{}, 4)
	cancel := startWatcher(t, src, func(context.Context, string) error {
		got <- struct{}{}
		return errors.New("boom")
	})
	defer cancel()

	for range 2 {
		require.NoError(t, os.WriteFile(src, []byte("## B\n"), 0o600))
		select {
		case <-got:
		case <-time.After(5 * time.Second):
			t.Fatal("handler was not called")
		}
	}
}

func TestNew_MissingDirectory(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing", "big.md"), func(context.Context, string) error { return nil })
	require.Error(t, err)
}
