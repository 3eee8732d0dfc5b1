package persister

import (
	"context"
	"log"
	"time"

	"carehome-backend/config"
	"carehome-backend/internal/facility"
	"carehome-backend/internal/store"
)

// Service periodically persists the facility state so a restart can
// pick up where it left off.
type Service struct {
	cfg   *config.SnapshotConfig
	core  *facility.CareHome
	store store.Store
}

// NewService creates a new snapshot persister.
func NewService(cfg *config.SnapshotConfig, core *facility.CareHome, s store.Store) *Service {
	return &Service{cfg: cfg, core: core, store: s}
}

// Run starts the persistence loop. It blocks until the context is
// cancelled and writes one final snapshot on the way out.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Enabled {
		log.Println("Snapshot persister is disabled. Not starting.")
		return
	}
	log.Println("Starting snapshot persister...")

	timer := time.NewTimer(s.cfg.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Snapshot persister shutting down.")
			return
		case <-timer.C:
			s.SaveOnce(ctx)
			timer.Reset(s.cfg.Interval)
		}
	}
}

// SaveOnce writes a single snapshot of the current state.
func (s *Service) SaveOnce(ctx context.Context) {
	if err := s.store.SaveSnapshot(ctx, s.core.Snapshot()); err != nil {
		log.Printf("Error persisting snapshot: %v", err)
		return
	}
	log.Println("Snapshot persisted.")
}
