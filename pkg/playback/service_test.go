package playback

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lingomap/pkg/model"
)

var errEmptyText = errors.New("text is empty")

type speakerFunc func(ctx context.Context, req model.VoiceRequest) (model.VoiceResult, error)

func (f speakerFunc) Validate(req model.VoiceRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return errEmptyText
	}
	return nil
}

func (f speakerFunc) Speak(ctx context.Context, req model.VoiceRequest) (model.VoiceResult, error) {
	return f(ctx, req)
}

func TestService_Play(t *testing.T) {
	svc := NewService(NewManager(), speakerFunc(func(ctx context.Context, req model.VoiceRequest) (model.VoiceResult, error) {
		return success("h1"), nil
	}))

	res, tk, applied, err := svc.Play(context.Background(), model.VoiceRequest{Text: "hi", LanguageID: "jpn", DialectName: "Osaka"})
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Equal(t, "h1", res.AudioHandle)
	assert.Equal(t, osaka, tk.Identity)
	assert.True(t, svc.Manager().State(osaka).IsPlaying())
}

func TestService_CallerErrorKeepsPlayback(t *testing.T) {
	calls := 0
	svc := NewService(NewManager(), speakerFunc(func(ctx context.Context, req model.VoiceRequest) (model.VoiceResult, error) {
		calls++
		return success("h1"), nil
	}))

	_, tk, applied, err := svc.Play(context.Background(), model.VoiceRequest{Text: "hi", LanguageID: "jpn", DialectName: "Osaka"})
	require.NoError(t, err)
	require.True(t, applied)

	_, _, applied, err = svc.Play(context.Background(), model.VoiceRequest{Text: "  ", LanguageID: "jpn", DialectName: "Osaka"})
	assert.ErrorIs(t, err, errEmptyText)
	assert.False(t, applied)
	assert.Equal(t, 1, calls)

	st := svc.Manager().State(osaka)
	assert.Equal(t, StatusPlaying, st.Status)
	assert.Equal(t, tk.Generation, st.Generation)
	assert.Equal(t, "h1", st.AudioHandle)
}

func TestService_SpeakErrorRecorded(t *testing.T) {
	boom := errors.New("unknown language")
	svc := NewService(NewManager(), speakerFunc(func(ctx context.Context, req model.VoiceRequest) (model.VoiceResult, error) {
		return model.VoiceResult{}, boom
	}))

	_, _, applied, err := svc.Play(context.Background(), model.VoiceRequest{Text: "hi", LanguageID: "jpn", DialectName: "Osaka"})
	assert.ErrorIs(t, err, boom)
	assert.False(t, applied)
	assert.Equal(t, StatusError, svc.Manager().State(osaka).Status)
}

func TestService_IdentityIgnoresCase(t *testing.T) {
	svc := NewService(NewManager(), speakerFunc(func(ctx context.Context, req model.VoiceRequest) (model.VoiceResult, error) {
		return success("h1"), nil
	}))

	_, tk, _, err := svc.Play(context.Background(), model.VoiceRequest{Text: "hi", LanguageID: " JPN ", DialectName: "Osaka"})
	require.NoError(t, err)
	assert.Equal(t, osaka, tk.Identity)
	assert.True(t, svc.Manager().State(model.Identity{LanguageID: "Jpn", DialectName: "Osaka"}).IsPlaying())
	assert.Len(t, svc.Manager().Snapshot(), 1)
}

func TestService_StopDuringRequest(t *testing.T) {
	started := make(chan struct{})
	mgr := NewManager()
	svc := NewService(mgr, speakerFunc(func(ctx context.Context, req model.VoiceRequest) (model.VoiceResult, error) {
		close(started)
		<-ctx.Done()
		return model.VoiceResult{ProviderUsed: model.ProviderNone, ErrorMessage: "cancelled"}, nil
	}))

	done := make(chan bool, 1)
	go func() {
		_, _, applied, _ := svc.Play(context.Background(), model.VoiceRequest{Text: "hi", LanguageID: "jpn", DialectName: "Osaka"})
		done <- applied
	}()

	<-started
	mgr.Stop(osaka)

	select {
	case applied := <-done:
		assert.False(t, applied)
	case <-time.After(time.Second):
		t.Fatal("request did not observe stop")
	}
	assert.Equal(t, StatusIdle, mgr.State(osaka).Status)
}
