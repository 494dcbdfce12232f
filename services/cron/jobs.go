package cron

import (
	"fmt"
	"time"

	"github.com/acadbridge/campus-api/model"
)

const (
	// auditLogRetention is how long admin audit entries are kept
	auditLogRetention = 90 * 24 * time.Hour
	// cronLogRetention is how long cron execution logs are kept
	cronLogRetention = 30 * 24 * time.Hour
)

// PurgeOldAuditLogs removes admin audit entries older than the retention window.
// Runs daily at 2 AM.
func (m *CronManager) PurgeOldAuditLogs() {
	jobName := "purge_audit_logs"

	cutoff := time.Now().Add(-auditLogRetention)

	result := m.db.Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&model.AdminAuditLog{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to purge audit logs: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Purged %d audit log entries", result.RowsAffected))
}

// CleanupCronJobLogs removes finished cron execution logs older than the
// retention window. Running entries are kept regardless of age.
// Runs daily at 3 AM.
func (m *CronManager) CleanupCronJobLogs() {
	jobName := "cleanup_cron_logs"

	cutoff := time.Now().Add(-cronLogRetention)

	result := m.db.Unscoped().
		Where("started_at < ? AND status != ?", cutoff, "running").
		Delete(&model.CronJobLog{})
	if result.Error != nil {
		m.logJobError(jobName, fmt.Errorf("failed to cleanup cron logs: %w", result.Error))
		return
	}

	m.logJobComplete(jobName, fmt.Sprintf("Removed %d cron log entries", result.RowsAffected))
}
