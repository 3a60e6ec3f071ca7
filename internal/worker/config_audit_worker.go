package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/stemsi/teachpay-backend/internal/config"
	"github.com/stemsi/teachpay-backend/internal/model"
)

const auditTimeout = 2 * time.Minute

// ConfigAuditor reports per-year payroll configuration.
type ConfigAuditor interface {
	AcademicYears(ctx context.Context) ([]string, error)
	ConfigStatus(ctx context.Context, academicYear string) (*model.ConfigStatus, error)
}

// AuditStore keeps the latest audit per year; *redis.Client satisfies it.
type AuditStore interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// ConfigAuditWorker periodically checks that the current and upcoming
// academic years have their payroll reference data, logs the gaps and
// stores the latest result per year in Redis.
type ConfigAuditWorker struct {
	auditor  ConfigAuditor
	store    AuditStore
	schedule string
	log      zerolog.Logger
	now      func() time.Time
}

func NewConfigAuditWorker(auditor ConfigAuditor, store AuditStore, cfg *config.Config, log zerolog.Logger) *ConfigAuditWorker {
	return &ConfigAuditWorker{
		auditor:  auditor,
		store:    store,
		schedule: cfg.ConfigAuditSchedule,
		log:      log.With().Str("component", "config_audit_worker").Logger(),
		now:      time.Now,
	}
}

// Start runs the audit on schedule until ctx is cancelled.
func (w *ConfigAuditWorker) Start(ctx context.Context) {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	_, err := c.AddFunc(w.schedule, func() {
		runCtx, cancel := context.WithTimeout(ctx, auditTimeout)
		defer cancel()
		w.Run(runCtx)
	})
	if err != nil {
		w.log.Error().Err(err).Str("schedule", w.schedule).Msg("invalid audit schedule, audit disabled")
		return
	}

	c.Start()
	w.log.Info().Str("schedule", w.schedule).Msg("ConfigAuditWorker started")

	<-ctx.Done()
	<-c.Stop().Done()
	w.log.Info().Msg("ConfigAuditWorker stopped")
}

// Run audits every known year from the current academic year on.
func (w *ConfigAuditWorker) Run(ctx context.Context) {
	years, err := w.auditor.AcademicYears(ctx)
	if err != nil {
		w.log.Error().Err(err).Msg("list academic years failed")
		return
	}

	for _, year := range auditYears(years, w.now()) {
		st, err := w.auditor.ConfigStatus(ctx, year)
		if err != nil {
			w.log.Error().Err(err).Str("academic_year", year).Msg("config audit failed")
			continue
		}

		if st.Ready {
			w.log.Info().Str("academic_year", year).Msg("payroll configuration complete")
		} else {
			kinds := make([]string, len(st.Missing))
			for i, k := range st.Missing {
				kinds[i] = string(k)
			}
			w.log.Warn().Str("academic_year", year).Strs("missing", kinds).Msg("payroll configuration incomplete")
		}

		raw, err := json.Marshal(st)
		if err != nil {
			w.log.Error().Err(err).Str("academic_year", year).Msg("encode config audit failed")
			continue
		}
		if err := w.store.Set(ctx, config.CacheKey.ConfigAuditKey(year), raw, 0).Err(); err != nil {
			w.log.Error().Err(err).Str("academic_year", year).Msg("store config audit failed")
		}
	}
}

// CurrentAcademicYear returns the academic year in progress at t. Years
// start in September.
func CurrentAcademicYear(t time.Time) string {
	start := t.Year()
	if t.Month() < time.September {
		start--
	}
	return fmt.Sprintf("%d-%d", start, start+1)
}

// auditYears keeps the years that have not ended yet.
func auditYears(years []string, now time.Time) []string {
	current := startYear(CurrentAcademicYear(now))
	var out []string
	for _, y := range years {
		if startYear(y) >= current {
			out = append(out, y)
		}
	}
	return out
}

func startYear(academicYear string) int {
	head, _, _ := strings.Cut(academicYear, "-")
	n, err := strconv.Atoi(head)
	if err != nil {
		return 0
	}
	return n
}
