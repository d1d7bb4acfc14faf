package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingLoader struct {
	started chan struct{}
	release chan struct{}
	state   *State
	err     error
}

func (b *blockingLoader) Load(ctx context.Context) (*State, error) {
	if b.started != nil {
		close(b.started)
	}
	if b.release != nil {
		<-b.release
	}
	return b.state, b.err
}

func TestStoreCurrentBeforeFirstLoad(t *testing.T) {
	s := NewStore(&blockingLoader{})

	assert.Equal(t, StatusIdle, s.Current().Status)
	assert.False(t, s.Loading())
}

func TestStoreRefreshReplacesState(t *testing.T) {
	loader := &blockingLoader{state: &State{CycleID: "one", Status: StatusReady}}
	s := NewStore(loader)

	st, err := s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "one", st.CycleID)
	assert.Same(t, st, s.Current())

	loader.state = &State{CycleID: "two", Status: StatusReady}
	_, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "two", s.Current().CycleID)
}

func TestStorePublishesFailedState(t *testing.T) {
	boom := errors.New("boom")
	s := NewStore(&blockingLoader{state: &State{Status: StatusError, Error: "failed"}, err: boom})

	_, err := s.Refresh(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, StatusError, s.Current().Status)
	assert.Equal(t, "failed", s.Current().Error)
}

func TestStoreRejectsConcurrentRefresh(t *testing.T) {
	loader := &blockingLoader{
		started: make(chan struct{}),
		release: make(chan struct{}),
		state:   &State{Status: StatusReady},
	}
	s := NewStore(loader)

	done := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background())
		done <- err
	}()

	<-loader.started
	assert.True(t, s.Loading())
	assert.Equal(t, StatusLoading, s.Current().Status)

	_, err := s.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrLoadInProgress)

	close(loader.release)
	require.NoError(t, <-done)
	assert.False(t, s.Loading())
	assert.Equal(t, StatusReady, s.Current().Status)
}

func TestStoreLoaded(t *testing.T) {
	loader := &blockingLoader{state: &State{Status: StatusError, Error: "failed"}, err: errors.New("boom")}
	s := NewStore(loader)

	_, err := s.Loaded()
	assert.ErrorIs(t, err, ErrNotLoaded)

	_, _ = s.Refresh(context.Background())
	st, err := s.Loaded()
	assert.ErrorIs(t, err, ErrNotLoaded)
	assert.Equal(t, StatusError, st.Status)

	loader.state, loader.err = &State{Status: StatusReady, CycleID: "ok"}, nil
	_, _ = s.Refresh(context.Background())
	st, err = s.Loaded()
	require.NoError(t, err)
	assert.Equal(t, "ok", st.CycleID)
}
