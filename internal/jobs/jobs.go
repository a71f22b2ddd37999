// Package jobs holds the scheduled background work of the API process.
package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const runTimeout = 5 * time.Minute

type StayCompleter interface {
	CompleteFinishedStays(ctx context.Context) (int64, error)
}

// ScheduleStayCompletion registers the stay completion sweep on c. An empty
// schedule disables it.
func ScheduleStayCompletion(c *cron.Cron, schedule string, stays StayCompleter, log *zap.Logger) error {
	if schedule == "" {
		log.Info("stay completion schedule disabled")
		return nil
	}
	_, err := c.AddFunc(schedule, func() { CompleteStays(context.Background(), stays, log) })
	if err != nil {
		return err
	}
	log.Info("stay completion scheduled", zap.String("schedule", schedule))
	return nil
}

// CompleteStays runs one sweep and logs its outcome.
func CompleteStays(ctx context.Context, stays StayCompleter, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	n, err := stays.CompleteFinishedStays(ctx)
	if err != nil {
		log.Error("stay completion failed", zap.Error(err))
		return
	}
	log.Info("stay completion finished", zap.Int64("completed", n))
}

type TokenPurger interface {
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// ScheduleTokenCleanup registers the purge of expired revoked tokens on c.
// An empty schedule disables it.
func ScheduleTokenCleanup(c *cron.Cron, schedule string, tokens TokenPurger, log *zap.Logger) error {
	if schedule == "" {
		log.Info("token cleanup schedule disabled")
		return nil
	}
	_, err := c.AddFunc(schedule, func() { PurgeExpiredTokens(context.Background(), tokens, time.Now(), log) })
	if err != nil {
		return err
	}
	log.Info("token cleanup scheduled", zap.String("schedule", schedule))
	return nil
}

// PurgeExpiredTokens drops revocations of tokens that expired before now.
func PurgeExpiredTokens(ctx context.Context, tokens TokenPurger, now time.Time, log *zap.Logger) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	n, err := tokens.DeleteExpired(ctx, now)
	if err != nil {
		log.Error("token cleanup failed", zap.Error(err))
		return
	}
	log.Info("token cleanup finished", zap.Int64("deleted", n))
}
