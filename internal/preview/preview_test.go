package preview

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/notesite/internal/config"
)

func TestShouldIgnoreEvent_FiltersEditorNoise(t *testing.T) {
	ignored := []string{
		"/vault/.hidden.md",
		"/vault/note.md~",
		"/vault/.note.md.swp",
		"/vault/.#note.md",
		"/vault/#note.md#",
		"/vault/Thumbs.db",
	}
	for _, p := range ignored {
		require.True(t, shouldIgnoreEvent(p), p)
	}

	require.False(t, shouldIgnoreEvent("/vault/note.md"))
	require.False(t, shouldIgnoreEvent("/vault/sub dir/other.md"))
}

func TestDebouncer_CollapsesBursts(t *testing.T) {
	s := New(&config.Config{}, func() error { return nil }, WithDebounce(20*time.Millisecond))
	rebuildReq, trigger := s.newDebouncer()

	for i := 0; i < 10; i++ {
		trigger()
	}

	select {
	case <-rebuildReq:
	case <-time.After(2 * time.Second):
		t.Fatal("debouncer never fired")
	}

	select {
	case <-rebuildReq:
		t.Fatal("burst produced more than one rebuild request")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestShutdown_LateDebounceTimerDoesNotPanic(t *testing.T) {
	s := New(&config.Config{}, func() error { return nil }, WithDebounce(10*time.Millisecond))
	rebuildReq, trigger := s.newDebouncer()

	// A change event arriving just before shutdown arms the timer; the timer
	// then fires after the server has stopped.
	trigger()
	require.NoError(t, s.shutdown(&http.Server{}))

	select {
	case <-rebuildReq:
	case <-time.After(time.Second):
		t.Fatal("armed debounce timer never delivered its request")
	}
}

func TestRebuildWorker_RequestsQueueAtMostOneFollowUp(t *testing.T) {
	var builds atomic.Int32
	release := make(chan struct{})
	s := New(&config.Config{}, func() error {
		builds.Add(1)
		<-release
		return nil
	}, WithDebounce(time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rebuildReq := make(chan struct{}, 1)
	s.startRebuildWorker(ctx, rebuildReq)

	rebuildReq <- struct{}{}
	require.Eventually(t, func() bool { return builds.Load() == 1 }, time.Second, 5*time.Millisecond)

	// pile up requests while the first build is blocked
	rebuildReq <- struct{}{}
	select {
	case rebuildReq <- struct{}{}:
	default:
	}

	close(release)
	require.Eventually(t, func() bool { return builds.Load() >= 2 }, time.Second, 5*time.Millisecond)

	// settle: no unbounded rebuild storm
	time.Sleep(50 * time.Millisecond)
	require.LessOrEqual(t, builds.Load(), int32(3))
}
