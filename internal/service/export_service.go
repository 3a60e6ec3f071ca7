package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/config"
	"github.com/stemsi/teachpay-backend/internal/export"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/payroll"
	"github.com/stemsi/teachpay-backend/internal/response"
)

// Renderer turns export parameters into a workbook.
type Renderer interface {
	Render(ctx context.Context, p model.ExportParams) (*export.Workbook, error)
}

// ExportService runs report exports in the background. Job state and the
// rendered workbook live in Redis for the configured TTL; every state
// change is published on the job's status channel.
type ExportService struct {
	renderer Renderer
	rdb      *redis.Client
	ttl      time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewExportService creates a new ExportService.
func NewExportService(renderer Renderer, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *ExportService {
	return &ExportService{
		renderer: renderer,
		rdb:      rdb,
		ttl:      cfg.ExportTTL,
		log:      log.With().Str("component", "export_service").Logger(),
		now:      time.Now,
	}
}

// Enqueue stores a queued job and hands it to the export worker.
func (s *ExportService) Enqueue(ctx context.Context, params model.ExportParams, requestedBy uuid.UUID) (*model.ExportJob, error) {
	if err := ValidateExportParams(params); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	job := &model.ExportJob{
		ID:          uuid.New(),
		Params:      params,
		Status:      model.ExportQueued,
		RequestedBy: requestedBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.save(ctx, job); err != nil {
		return nil, err
	}
	if err := s.rdb.RPush(ctx, config.WorkerKey.ExportReportsQueue, job.ID.String()).Err(); err != nil {
		return nil, fmt.Errorf("enqueue export: %w", err)
	}

	s.log.Info().Str("job_id", job.ID.String()).Str("kind", string(params.Kind)).Msg("export queued")
	return job, nil
}

// Status returns the job, or ErrNotFound once it has expired.
func (s *ExportService) Status(ctx context.Context, jobID uuid.UUID) (*model.ExportJob, error) {
	raw, err := s.rdb.Get(ctx, config.CacheKey.ExportJobKey(jobID.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var job model.ExportJob
	if err := json.Unmarshal(raw, &job); err != nil {
		return nil, fmt.Errorf("decode export job: %w", err)
	}
	return &job, nil
}

// Download returns a finished job with its workbook bytes.
func (s *ExportService) Download(ctx context.Context, jobID uuid.UUID) (*model.ExportJob, []byte, error) {
	job, err := s.Status(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.Status != model.ExportDone {
		return job, nil, ErrExportNotReady
	}

	data, err := s.rdb.Get(ctx, config.CacheKey.ExportResultKey(jobID.String())).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}
	return job, data, nil
}

// Subscribe opens the job's status channel. The caller closes it.
func (s *ExportService) Subscribe(ctx context.Context, jobID uuid.UUID) *redis.PubSub {
	return s.rdb.Subscribe(ctx, config.CacheKey.ExportStatusChannel(jobID.String()))
}

// Process renders one queued job. Report failures are recorded on the job
// and are not returned; only Redis failures are.
func (s *ExportService) Process(ctx context.Context, jobID uuid.UUID) error {
	job, err := s.Status(ctx, jobID)
	if err != nil {
		return err
	}
	if job.Status.Finished() {
		return nil
	}

	job.Status = model.ExportRunning
	if err := s.update(ctx, job); err != nil {
		return err
	}

	wb, renderErr := s.renderer.Render(ctx, job.Params)
	if renderErr != nil {
		job.Status = model.ExportFailed
		job.ErrorCode = string(JobErrorCode(renderErr))
		job.Error = renderErr.Error()
		s.log.Warn().Err(renderErr).Str("job_id", jobID.String()).Msg("export failed")
		return s.update(ctx, job)
	}

	if err := s.rdb.Set(ctx, config.CacheKey.ExportResultKey(jobID.String()), wb.Data, s.ttl).Err(); err != nil {
		return fmt.Errorf("store export result: %w", err)
	}
	job.Status = model.ExportDone
	job.Filename = wb.Filename
	s.log.Info().Str("job_id", jobID.String()).Str("filename", wb.Filename).Int("bytes", len(wb.Data)).Msg("export done")
	return s.update(ctx, job)
}

func (s *ExportService) update(ctx context.Context, job *model.ExportJob) error {
	job.UpdatedAt = s.now().UTC()
	if err := s.save(ctx, job); err != nil {
		return err
	}
	raw, _ := json.Marshal(job)
	return s.rdb.Publish(ctx, config.CacheKey.ExportStatusChannel(job.ID.String()), raw).Err()
}

func (s *ExportService) save(ctx context.Context, job *model.ExportJob) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, config.CacheKey.ExportJobKey(job.ID.String()), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("store export job: %w", err)
	}
	return nil
}

// JobErrorCode classifies a render failure for the job record.
func JobErrorCode(err error) response.ErrCode {
	switch {
	case errors.Is(err, payroll.ErrConfigurationMissing):
		return response.ErrConfigurationMissing
	case errors.Is(err, payroll.ErrSemesterYearMismatch):
		return response.ErrSemesterYearMismatch
	case errors.Is(err, ErrNotFound):
		return response.ErrNotFound
	case errors.Is(err, ErrInvalidExportParams):
		return response.ErrValidation
	default:
		return response.ErrExportFailed
	}
}
