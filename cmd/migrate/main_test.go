package main

import (
	"bytes"
	"errors"
	"testing"

	"github.com/golang-migrate/migrate/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMigrator struct {
	upErr      error
	downErr    error
	steps      []int
	version    uint
	dirty      bool
	versionErr error
	forced     *int
}

func (f *fakeMigrator) Up() error   { return f.upErr }
func (f *fakeMigrator) Down() error { return f.downErr }

func (f *fakeMigrator) Steps(n int) error {
	f.steps = append(f.steps, n)
	return nil
}

func (f *fakeMigrator) Version() (uint, bool, error) { return f.version, f.dirty, f.versionErr }

func (f *fakeMigrator) Force(v int) error {
	f.forced = &v
	return nil
}

func testLogger(buf *bytes.Buffer) zerolog.Logger {
	return zerolog.New(buf)
}

func TestRun_VersionOnFreshDatabase(t *testing.T) {
	var buf bytes.Buffer
	m := &fakeMigrator{versionErr: migrate.ErrNilVersion}

	require.NoError(t, run(m, []string{"version"}, testLogger(&buf)))
	assert.Contains(t, buf.String(), "No migrations applied yet")
}

func TestRun_Version(t *testing.T) {
	var buf bytes.Buffer
	m := &fakeMigrator{version: 1, dirty: true}

	require.NoError(t, run(m, []string{"version"}, testLogger(&buf)))
	assert.Contains(t, buf.String(), `"version":1`)
	assert.Contains(t, buf.String(), `"dirty":true`)
}

func TestRun_VersionError(t *testing.T) {
	m := &fakeMigrator{versionErr: errors.New("connection refused")}
	assert.ErrorContains(t, run(m, []string{"version"}, zerolog.Nop()), "connection refused")
}

func TestRun_NoChangeIsSuccess(t *testing.T) {
	m := &fakeMigrator{
		upErr:   migrate.ErrNoChange,
		downErr: migrate.ErrNoChange,
	}
	assert.NoError(t, run(m, []string{"up"}, zerolog.Nop()))
	assert.NoError(t, run(m, []string{"down"}, zerolog.Nop()))
}

func TestRun_WrappedNoChangeIsSuccess(t *testing.T) {
	m := &fakeMigrator{upErr: errors.Join(migrate.ErrNoChange)}
	assert.NoError(t, run(m, []string{"up"}, zerolog.Nop()))
}

func TestRun_UpFailure(t *testing.T) {
	m := &fakeMigrator{upErr: errors.New("syntax error at or near")}
	assert.ErrorContains(t, run(m, []string{"up"}, zerolog.Nop()), "migrate up")
}

func TestRun_DownSteps(t *testing.T) {
	m := &fakeMigrator{}

	require.NoError(t, run(m, []string{"down", "2"}, zerolog.Nop()))
	assert.Equal(t, []int{-2}, m.steps)

	assert.Error(t, run(m, []string{"down", "0"}, zerolog.Nop()))
	assert.Error(t, run(m, []string{"down", "x"}, zerolog.Nop()))
}

func TestRun_Force(t *testing.T) {
	m := &fakeMigrator{}

	require.NoError(t, run(m, []string{"force", "3"}, zerolog.Nop()))
	require.NotNil(t, m.forced)
	assert.Equal(t, 3, *m.forced)

	assert.Error(t, run(m, []string{"force"}, zerolog.Nop()))
	assert.Error(t, run(m, []string{"force", "abc"}, zerolog.Nop()))
}

func TestRun_Usage(t *testing.T) {
	m := &fakeMigrator{}
	assert.ErrorIs(t, run(m, nil, zerolog.Nop()), errUsage)
	assert.ErrorIs(t, run(m, []string{"sideways"}, zerolog.Nop()), errUsage)
}
