package playback

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingomap/pkg/model"
)

var (
	osaka = model.Identity{LanguageID: "jpn", DialectName: "Osaka"}
	kyoto = model.Identity{LanguageID: "jpn", DialectName: "Kyoto"}
)

func success(handle string) model.VoiceResult {
	return model.VoiceResult{Succeeded: true, AudioHandle: handle, ProviderUsed: model.ProviderCloudA}
}

func TestManager_Lifecycle(t *testing.T) {
	m := NewManager()

	assert.Equal(t, StatusIdle, m.State(osaka).Status)

	tk, ctx := m.Begin(context.Background(), osaka)
	assert.True(t, m.State(osaka).IsLoading())
	assert.NoError(t, ctx.Err())

	assert.True(t, m.Complete(tk, success("h1")))
	st := m.State(osaka)
	assert.True(t, st.IsPlaying())
	assert.Equal(t, "h1", st.AudioHandle)
	assert.Error(t, ctx.Err(), "context released once complete")

	assert.True(t, m.Finished(osaka, tk.Generation))
	assert.Equal(t, StatusIdle, m.State(osaka).Status)
	assert.False(t, m.Finished(osaka, tk.Generation), "second report ignored")
}

func TestManager_ReplaceCancelsInFlight(t *testing.T) {
	m := NewManager()

	first, ctx1 := m.Begin(context.Background(), osaka)
	second, ctx2 := m.Begin(context.Background(), osaka)

	assert.ErrorIs(t, ctx1.Err(), context.Canceled)
	assert.NoError(t, ctx2.Err())
	assert.Greater(t, second.Generation, first.Generation)

	assert.False(t, m.Complete(first, success("late")), "stale result discarded")
	assert.True(t, m.State(osaka).IsLoading())

	assert.True(t, m.Complete(second, success("fresh")))
	assert.Equal(t, "fresh", m.State(osaka).AudioHandle)
}

func TestManager_ReplaceStopsCompletedPlayback(t *testing.T) {
	m := NewManager()

	first, _ := m.Begin(context.Background(), osaka)
	m.Complete(first, success("h1"))
	require.True(t, m.State(osaka).IsPlaying())

	_, _ = m.Begin(context.Background(), osaka)
	st := m.State(osaka)
	assert.True(t, st.IsLoading())
	assert.Empty(t, st.AudioHandle)
	assert.False(t, m.Finished(osaka, first.Generation), "old playback cannot finish the new one")
}

func TestManager_StopDiscardsLateResult(t *testing.T) {
	m := NewManager()

	tk, ctx := m.Begin(context.Background(), osaka)
	st := m.Stop(osaka)

	assert.Equal(t, StatusIdle, st.Status)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.False(t, m.Complete(tk, success("late")))
	assert.Equal(t, StatusIdle, m.State(osaka).Status)
}

func TestManager_IdentitiesIsolated(t *testing.T) {
	m := NewManager()

	a, _ := m.Begin(context.Background(), osaka)
	b, _ := m.Begin(context.Background(), kyoto)
	m.Stop(kyoto)

	assert.True(t, m.Complete(a, success("osaka")))
	assert.False(t, m.Complete(b, success("kyoto")))

	snap := m.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, kyoto, snap[0].Identity)
	assert.Equal(t, osaka, snap[1].Identity)
}

func TestManager_FailureKeepsLastError(t *testing.T) {
	m := NewManager()

	tk, _ := m.Begin(context.Background(), osaka)
	m.Complete(tk, model.VoiceResult{ProviderUsed: model.ProviderNone, ErrorMessage: "all providers failed"})

	st := m.State(osaka)
	assert.Equal(t, StatusError, st.Status)
	assert.Equal(t, "all providers failed", st.LastError)

	tk, _ = m.Begin(context.Background(), osaka)
	assert.True(t, m.Fail(tk, errors.New("text is empty")))
	assert.Equal(t, "text is empty", m.State(osaka).LastError)
}

func TestManager_StopAll(t *testing.T) {
	m := NewManager()
	_, c1 := m.Begin(context.Background(), osaka)
	_, c2 := m.Begin(context.Background(), kyoto)

	m.StopAll()
	assert.Error(t, c1.Err())
	assert.Error(t, c2.Err())
	assert.Equal(t, StatusIdle, m.State(osaka).Status)
	assert.Equal(t, StatusIdle, m.State(kyoto).Status)
}

func TestManager_Subscribe(t *testing.T) {
	m := NewManager()
	ch, unsubscribe := m.Subscribe(8)

	tk, _ := m.Begin(context.Background(), osaka)
	m.Complete(tk, success("h1"))

	for _, want := range []Status{StatusLoading, StatusPlaying} {
		select {
		case st := <-ch:
			assert.Equal(t, want, st.Status)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	unsubscribe()
	unsubscribe()
	_, open := <-ch
	assert.False(t, open)

	// publishing after unsubscribe must not panic
	m.Stop(osaka)
}

func TestManager_FeedMatchesFinalState(t *testing.T) {
	m := NewManager()
	ch, unsubscribe := m.Subscribe(4096)
	defer unsubscribe()

	for i := 0; i < 200; i++ {
		tk, _ := m.Begin(context.Background(), osaka)
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); m.Complete(tk, success("h")) }()
		go func() { defer wg.Done(); m.Stop(osaka) }()
		wg.Wait()

		var last State
	drain:
		for {
			select {
			case last = <-ch:
			default:
				break drain
			}
		}
		require.Equal(t, m.State(osaka), last, "iteration %d", i)
	}
}

func TestManager_IdentityNormalized(t *testing.T) {
	m := NewManager()

	tk, _ := m.Begin(context.Background(), model.Identity{LanguageID: "JPN", DialectName: " Osaka "})
	assert.Equal(t, osaka, tk.Identity)
	assert.True(t, m.Complete(tk, success("h1")))
	assert.True(t, m.State(osaka).IsPlaying())

	st := m.Stop(model.Identity{LanguageID: "jpn ", DialectName: "Osaka"})
	assert.Equal(t, osaka, st.Identity)
	assert.Len(t, m.Snapshot(), 1)
}
