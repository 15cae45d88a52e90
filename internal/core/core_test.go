package core

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/voidshard/logogen/internal/mocks/pkg/artifact_mock"
	"github.com/voidshard/logogen/internal/mocks/pkg/database_mock"
	"github.com/voidshard/logogen/pkg/structs"
)

// fixedRand returns the same draws every time
type fixedRand struct {
	i int
	f float64
}

func (r *fixedRand) Intn(n int) int {
	if r.i >= n {
		return n - 1
	}
	return r.i
}

func (r *fixedRand) Float64() float64 { return r.f }

// recordedSleep notes requested delays and returns immediately (or with err)
type recordedSleep struct {
	lock  sync.Mutex
	slept []time.Duration
	err   error
}

func (s *recordedSleep) sleep(ctx context.Context, d time.Duration) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.slept = append(s.slept, d)
	return s.err
}

// recordedDispatch notes changes handed to it
type recordedDispatch struct {
	lock sync.Mutex
	got  []*structs.Change
}

func (d *recordedDispatch) Dispatch(ctx context.Context, ch *structs.Change) error {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.got = append(d.got, ch)
	return nil
}

func newTestService(t *testing.T, rng Rand) (*Service, *database_mock.MockDatabase, *artifact_mock.MockResolver, *recordedSleep) {
	ctrl := gomock.NewController(t)
	db := database_mock.NewMockDatabase(ctrl)
	art := artifact_mock.NewMockResolver(ctrl)

	svc, err := NewService(db, art, &structs.Options{
		EventRoutines:     2,
		InvocationTimeout: time.Second,
		ReconnectDelay:    time.Millisecond,
	}, zerolog.Nop())
	assert.Nil(t, err)

	sl := &recordedSleep{}
	svc.sleep = sl.sleep
	if rng != nil {
		svc.rng = rng
	}
	return svc, db, art, sl
}

func jobCreated(id string, j *structs.Job) *structs.Change {
	return &structs.Change{Kind: structs.KindJob, Op: structs.OpInsert, ID: id, Job: j}
}
