package jobs

import (
	"context"
	"time"

	"ace-zone.backend/internal/domain/entities"
	"ace-zone.backend/internal/domain/repositories"
	"ace-zone.backend/pkg/keylock"
	"ace-zone.backend/pkg/logger"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// MatchStartJob advances open matches to in-progress once their start time
// has passed, so a forgotten admin transition does not leave a running match
// bookable.
type MatchStartJob struct {
	matchRepo repositories.MatchRepository
	locks     *keylock.KeyLock
	interval  time.Duration
	sched     gocron.Scheduler
}

// NewMatchStartJob creates the match start job. The lock set must be the one
// the booking coordinator uses.
func NewMatchStartJob(matchRepo repositories.MatchRepository, locks *keylock.KeyLock, interval time.Duration) *MatchStartJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &MatchStartJob{
		matchRepo: matchRepo,
		locks:     locks,
		interval:  interval,
	}
}

// Start schedules the periodic sweep
func (j *MatchStartJob) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	j.sched = sched

	_, err = sched.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(func() {
			j.promoteStarted(ctx)
		}),
	)
	if err != nil {
		return err
	}

	sched.Start()
	logger.Info(ctx, "match start job scheduled", zap.Duration("interval", j.interval))
	return nil
}

// Stop shuts the scheduler down
func (j *MatchStartJob) Stop() error {
	if j.sched == nil {
		return nil
	}
	return j.sched.Shutdown()
}

func (j *MatchStartJob) promoteStarted(ctx context.Context) {
	started, err := j.matchRepo.ListStartedBefore(ctx, time.Now())
	if err != nil {
		logger.Error(ctx, "match start sweep failed", zap.Error(err))
		return
	}

	for _, m := range started {
		j.promote(ctx, m.ID)
	}
}

// promote re-reads under the match lock so an admin transition that landed
// between the sweep and the update is never overwritten.
func (j *MatchStartJob) promote(ctx context.Context, matchID string) {
	unlock := j.locks.Lock(matchID)
	defer unlock()

	match, err := j.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return
	}
	if match.Status != entities.MatchStatusOpen {
		return
	}

	if err := j.matchRepo.UpdateStatus(ctx, matchID, entities.MatchStatusInProgress); err != nil {
		logger.Error(ctx, "failed to start match", zap.String("matchId", matchID), zap.Error(err))
		return
	}
	logger.Info(ctx, "match auto-started", zap.String("matchId", matchID))
}
