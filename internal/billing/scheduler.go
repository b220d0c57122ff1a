package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs ExpireStale on a cron schedule
type Scheduler struct {
	cron    *cron.Cron
	service *Service
	log     logrus.FieldLogger
	timeout time.Duration
}

// NewScheduler registers the expiry job. spec accepts standard cron
// expressions and descriptors such as "@every 15m".
func NewScheduler(service *Service, spec string, log logrus.FieldLogger) (*Scheduler, error) {
	if log == nil {
		log = service.log
	}
	s := &Scheduler{
		cron:    cron.New(),
		service: service,
		log:     log,
		timeout: time.Minute,
	}
	if _, err := s.cron.AddFunc(spec, s.runExpiry); err != nil {
		return nil, fmt.Errorf("invalid expiry schedule %q: %w", spec, err)
	}
	return s, nil
}

// Start runs the scheduler in its own goroutine
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts scheduling and waits for a running job to finish or ctx to end
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) runExpiry() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.service.ExpireStale(ctx); err != nil {
		s.log.WithError(err).Error("expiring stale purchases failed")
	}
}
