package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	calls [][]string
	ch    chan struct{}
}

func newRecorder() *recorder {
	return &recorder{ch: make(chan struct{}, 16)}
}

func (r *recorder) callback(_ context.Context, changed []string) error {
	r.mu.Lock()
	r.calls = append(r.calls, changed)
	r.mu.Unlock()
	r.ch <- struct{}{}
	return nil
}

func (r *recorder) wait(t *testing.T) {
	t.Helper()
	select {
	case <-r.ch:
	case <-time.After(5 * time.Second):
		t.Fatal("callback was not called")
	}
}

func startWatcher(t *testing.T, files []string, r *recorder) {
	t.Helper()
	w, err := New(files, r.callback)
	require.NoError(t, err)
	w.SetDebounce(50 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, w.Run(ctx))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "extension_api.json")
	require.NoError(t, os.WriteFile(snapshot, []byte("{}"), 0644))

	r := newRecorder()
	startWatcher(t, []string{snapshot}, r)

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(snapshot, []byte("{ }"), 0644))
	}
	r.wait(t)

	// Give a second callback the chance to show up
	time.Sleep(200 * time.Millisecond)
	r.mu.Lock()
	defer r.mu.Unlock()
	require.Len(t, r.calls, 1)
	assert.Equal(t, []string{snapshot}, r.calls[0])
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "extension_api.json")
	require.NoError(t, os.WriteFile(snapshot, []byte("{}"), 0644))

	r := newRecorder()
	startWatcher(t, []string{snapshot}, r)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0644))
	select {
	case <-r.ch:
		t.Fatal("callback fired for an unwatched file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherRunsCallbacksOneAtATime(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "extension_api.json")
	require.NoError(t, os.WriteFile(snapshot, []byte("{}"), 0644))

	var active, maxActive, calls int32
	started := make(chan struct{}, 2)
	w, err := New([]string{snapshot}, func(context.Context, []string) error {
		n := atomic.AddInt32(&active, 1)
		for {
			m := atomic.LoadInt32(&maxActive)
			if n <= m || atomic.CompareAndSwapInt32(&maxActive, m, n) {
				break
			}
		}
		started <- struct{}{}
		time.Sleep(100 * time.Millisecond)
		atomic.AddInt32(&active, -1)
		atomic.AddInt32(&calls, 1)
		return nil
	})
	require.NoError(t, err)
	t.Cleanup(func() { w.watcher.Close() })

	ctx := context.Background()
	var wg sync.WaitGroup
	trigger := func() {
		w.mu.Lock()
		w.pending[snapshot] = true
		w.mu.Unlock()
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.fire(ctx)
		}()
	}

	trigger()
	<-started
	// A second change arrives while the first regeneration is running
	trigger()
	wg.Wait()

	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxActive))
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "absent", "api.json")}, newRecorder().callback)
	assert.Error(t, err)
}
