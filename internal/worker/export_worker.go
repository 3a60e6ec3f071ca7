package worker

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/config"
)

const ExportPollTimeout = 1 * time.Second

// ExportProcessor renders one queued export job.
type ExportProcessor interface {
	Process(ctx context.Context, jobID uuid.UUID) error
}

// ExportWorker consumes the export queue one job at a time.
type ExportWorker struct {
	processor ExportProcessor
	rdb       *redis.Client
	log       zerolog.Logger
}

func NewExportWorker(processor ExportProcessor, rdb *redis.Client, log zerolog.Logger) *ExportWorker {
	return &ExportWorker{
		processor: processor,
		rdb:       rdb,
		log:       log.With().Str("component", "export_worker").Logger(),
	}
}

func (w *ExportWorker) Start(ctx context.Context) {
	w.log.Info().Msg("ExportWorker started")

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("ExportWorker stopped")
			return

		default:
			item, err := w.rdb.BLPop(ctx, ExportPollTimeout, config.WorkerKey.ExportReportsQueue).Result()
			if err != nil {
				if !errors.Is(err, redis.Nil) && ctx.Err() == nil {
					w.log.Error().Err(err).Msg("BLPop error")
				}
				continue
			}
			if len(item) < 2 {
				continue
			}

			jobID, err := uuid.Parse(item[1])
			if err != nil {
				w.log.Error().Str("payload", item[1]).Msg("Invalid job id")
				continue
			}
			w.handle(ctx, jobID)
		}
	}
}

// handle processes one job; a panic in rendering fails only that job.
func (w *ExportWorker) handle(ctx context.Context, jobID uuid.UUID) {
	defer func() {
		if r := recover(); r != nil {
			w.log.Error().Interface("panic", r).Str("job_id", jobID.String()).Msg("export panicked")
		}
	}()

	start := time.Now()
	if err := w.processor.Process(ctx, jobID); err != nil {
		w.log.Error().Err(err).Str("job_id", jobID.String()).Msg("export job error")
		return
	}
	w.log.Debug().Str("job_id", jobID.String()).Dur("took", time.Since(start)).Msg("export job handled")
}
