package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// RevokedTokenKey marks a logged-out token by its JTI until the token expires.
func (r *CacheKeyStruct) RevokedTokenKey(jti string) string {
	return fmt.Sprintf("auth:revoked:%s", jti)
}

// ExportJobKey holds the JSON state of an export job.
func (r *CacheKeyStruct) ExportJobKey(jobID string) string {
	return fmt.Sprintf("export:%s:job", jobID)
}

// ExportResultKey holds the rendered workbook bytes of a finished export job.
func (r *CacheKeyStruct) ExportResultKey(jobID string) string {
	return fmt.Sprintf("export:%s:result", jobID)
}

// ExportStatusChannel is the Redis PubSub channel for export job updates.
func (r *CacheKeyStruct) ExportStatusChannel(jobID string) string {
	return fmt.Sprintf("export:%s:status", jobID)
}

// ConfigAuditKey holds the latest configuration audit for an academic year.
func (r *CacheKeyStruct) ConfigAuditKey(academicYear string) string {
	return fmt.Sprintf("payroll:config_audit:%s", academicYear)
}

var CacheKey = NewCacheKeyStruct()
