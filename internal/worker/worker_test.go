package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stemsi/teachpay-backend/internal/config"
	"github.com/stemsi/teachpay-backend/internal/model"
	"github.com/stemsi/teachpay-backend/internal/payroll"
)

func TestCurrentAcademicYear(t *testing.T) {
	assert.Equal(t, "2025-2026", CurrentAcademicYear(time.Date(2025, time.September, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2025-2026", CurrentAcademicYear(time.Date(2026, time.August, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-2025", CurrentAcademicYear(time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)))
}

func TestAuditYears(t *testing.T) {
	now := time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC)
	years := []string{"2026-2027", "2025-2026", "2024-2025", "bad"}

	assert.Equal(t, []string{"2026-2027", "2025-2026"}, auditYears(years, now))
	assert.Empty(t, auditYears(nil, now))
}

// ─── Config audit ─────────────────────────────────────────────────────

type fakeAuditor struct {
	years    []string
	yearsErr error
	statuses map[string]*model.ConfigStatus
	audited  []string
}

func (f *fakeAuditor) AcademicYears(context.Context) ([]string, error) {
	return f.years, f.yearsErr
}

func (f *fakeAuditor) ConfigStatus(_ context.Context, year string) (*model.ConfigStatus, error) {
	f.audited = append(f.audited, year)
	st, ok := f.statuses[year]
	if !ok {
		return nil, errors.New("database is closed")
	}
	return st, nil
}

type fakeAuditStore struct {
	saved  map[string][]byte
	failOn string
}

func (f *fakeAuditStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) *redis.StatusCmd {
	if key == f.failOn {
		return redis.NewStatusResult("", errors.New("READONLY"))
	}
	f.saved[key] = value.([]byte)
	return redis.NewStatusResult("OK", nil)
}

func newAuditWorker(auditor ConfigAuditor, store AuditStore, buf *bytes.Buffer) *ConfigAuditWorker {
	w := NewConfigAuditWorker(auditor, store, &config.Config{ConfigAuditSchedule: "@daily"}, zerolog.New(buf))
	w.now = func() time.Time { return time.Date(2025, time.October, 1, 0, 0, 0, 0, time.UTC) }
	return w
}

func TestConfigAuditWorker_Run(t *testing.T) {
	auditor := &fakeAuditor{
		years: []string{"2027-2028", "2026-2027", "2025-2026", "2024-2025"},
		statuses: map[string]*model.ConfigStatus{
			"2025-2026": {AcademicYear: "2025-2026", Ready: true, Missing: []payroll.ConfigKind{}},
			"2026-2027": {AcademicYear: "2026-2027", Missing: []payroll.ConfigKind{payroll.ConfigHourlyRate}},
			"2024-2025": {AcademicYear: "2024-2025", Ready: true},
		},
	}
	store := &fakeAuditStore{saved: map[string][]byte{}}
	var buf bytes.Buffer

	newAuditWorker(auditor, store, &buf).Run(context.Background())

	// Past years are skipped; a failing year does not stop the rest.
	assert.Equal(t, []string{"2027-2028", "2026-2027", "2025-2026"}, auditor.audited)
	require.Len(t, store.saved, 2)
	assert.NotContains(t, store.saved, config.CacheKey.ConfigAuditKey("2027-2028"))

	var current model.ConfigStatus
	require.NoError(t, json.Unmarshal(store.saved[config.CacheKey.ConfigAuditKey("2025-2026")], &current))
	assert.True(t, current.Ready)

	var next model.ConfigStatus
	require.NoError(t, json.Unmarshal(store.saved[config.CacheKey.ConfigAuditKey("2026-2027")], &next))
	assert.False(t, next.Ready)
	assert.Equal(t, []payroll.ConfigKind{payroll.ConfigHourlyRate}, next.Missing)

	logs := buf.String()
	assert.Contains(t, logs, "config audit failed")
	assert.Contains(t, logs, "payroll configuration incomplete")
}

func TestConfigAuditWorker_RunStoreFailure(t *testing.T) {
	auditor := &fakeAuditor{
		years: []string{"2025-2026", "2026-2027"},
		statuses: map[string]*model.ConfigStatus{
			"2025-2026": {AcademicYear: "2025-2026", Ready: true},
			"2026-2027": {AcademicYear: "2026-2027", Ready: true},
		},
	}
	store := &fakeAuditStore{saved: map[string][]byte{}, failOn: config.CacheKey.ConfigAuditKey("2025-2026")}
	var buf bytes.Buffer

	newAuditWorker(auditor, store, &buf).Run(context.Background())

	assert.Len(t, store.saved, 1)
	assert.Contains(t, store.saved, config.CacheKey.ConfigAuditKey("2026-2027"))
	assert.Contains(t, buf.String(), "store config audit failed")
}

func TestConfigAuditWorker_RunListFailure(t *testing.T) {
	auditor := &fakeAuditor{yearsErr: errors.New("timeout")}
	store := &fakeAuditStore{saved: map[string][]byte{}}
	var buf bytes.Buffer

	newAuditWorker(auditor, store, &buf).Run(context.Background())

	assert.Empty(t, auditor.audited)
	assert.Empty(t, store.saved)
	assert.Contains(t, buf.String(), "list academic years failed")
}

// ─── Export worker ────────────────────────────────────────────────────

type fakeProcessor struct {
	calls []uuid.UUID
	err   error
	panic any
}

func (f *fakeProcessor) Process(_ context.Context, jobID uuid.UUID) error {
	f.calls = append(f.calls, jobID)
	if f.panic != nil {
		panic(f.panic)
	}
	return f.err
}

func TestExportWorker_Handle(t *testing.T) {
	tests := []struct {
		name    string
		proc    *fakeProcessor
		wantLog string
	}{
		{"success", &fakeProcessor{}, ""},
		{"processor error", &fakeProcessor{err: errors.New("render failed")}, "export job error"},
		{"processor panic", &fakeProcessor{panic: "nil map write"}, "export panicked"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewExportWorker(tt.proc, nil, zerolog.New(&buf).Level(zerolog.InfoLevel))
			jobID := uuid.New()

			require.NotPanics(t, func() { w.handle(context.Background(), jobID) })

			assert.Equal(t, []uuid.UUID{jobID}, tt.proc.calls)
			if tt.wantLog == "" {
				assert.Empty(t, buf.String())
				return
			}
			assert.Contains(t, buf.String(), tt.wantLog)
			assert.Contains(t, buf.String(), jobID.String())
		})
	}
}
