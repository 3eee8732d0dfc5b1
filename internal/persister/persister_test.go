package persister

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"carehome-backend/config"
	"carehome-backend/internal/facility"
)

type recordingStore struct {
	mu      sync.Mutex
	saves   int
	saveErr error
	last    facility.State
}

func (s *recordingStore) DB() *gorm.DB { return nil }

func (s *recordingStore) SaveSnapshot(_ context.Context, st facility.State) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	s.last = st
	return nil
}

func (s *recordingStore) LoadSnapshot(context.Context) (facility.State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.saves > 0, nil
}

func (s *recordingStore) saveCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time { return f.t }

func newCore() *facility.CareHome {
	core := facility.New(fixedClock{t: time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC)})
	ward := facility.NewWard("W1", "West")
	room := facility.NewRoom("R1")
	room.AddBed(facility.NewBed("B1"))
	ward.AddRoom(room)
	core.AddWard(ward)
	return core
}

func TestSaveOnce(t *testing.T) {
	rec := &recordingStore{}
	svc := NewService(&config.SnapshotConfig{Enabled: true, Interval: time.Hour}, newCore(), rec)

	svc.SaveOnce(context.Background())

	assert.Equal(t, 1, rec.saveCount())
	assert.Len(t, rec.last.Wards, 1)
}

func TestSaveOnceSwallowsStoreErrors(t *testing.T) {
	rec := &recordingStore{saveErr: errors.New("disk full")}
	svc := NewService(&config.SnapshotConfig{Enabled: true, Interval: time.Hour}, newCore(), rec)

	svc.SaveOnce(context.Background())

	assert.Equal(t, 0, rec.saveCount())
}

func TestRunDisabledReturnsImmediately(t *testing.T) {
	rec := &recordingStore{}
	svc := NewService(&config.SnapshotConfig{Enabled: false, Interval: time.Millisecond}, newCore(), rec)

	done := make(chan struct{})
	go func() {
		svc.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run should return immediately when disabled")
	}
	assert.Equal(t, 0, rec.saveCount())
}

func TestRunSavesOnInterval(t *testing.T) {
	rec := &recordingStore{}
	svc := NewService(&config.SnapshotConfig{Enabled: true, Interval: 10 * time.Millisecond}, newCore(), rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool { return rec.saveCount() >= 1 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done
}
