package auditor

import "time"

// Report summarizes one enforcement run.
type Report struct {
	SchemaVersion string `json:"schema_version"`
	RunID         string `json:"run_id"`
	AccountID     string `json:"account_id,omitempty"`
	GeneratedAt   string `json:"generated_at"`

	NotifyAgeDays     int `json:"notify_age_days"`
	DeactivateAgeDays int `json:"deactivate_age_days"`

	UsersScanned int `json:"users_scanned"` // users whose keys were listed
	UsersSkipped int `json:"users_skipped"` // users whose keys could not be listed

	KeysScanned int `json:"keys_scanned"` // active keys classified
	KeysSkipped int `json:"keys_skipped"` // inactive keys, or keys without a creation date

	KeysCompliant   int `json:"keys_compliant"`
	KeysNotified    int `json:"keys_notified"`
	KeysDeactivated int `json:"keys_deactivated"`

	NotificationsSkipped int `json:"notifications_skipped"` // notify-class keys with no contact
	NotificationFailures int `json:"notification_failures"`
	DeactivationFailures int `json:"deactivation_failures"`
}

// NewReport creates a Report for one run with both thresholds resolved.
func NewReport(runID string, now time.Time, notifyAgeDays int) *Report {
	return &Report{
		SchemaVersion:     SchemaVersion,
		RunID:             runID,
		GeneratedAt:       now.UTC().Format(time.RFC3339),
		NotifyAgeDays:     notifyAgeDays,
		DeactivateAgeDays: notifyAgeDays + GracePeriodDays,
	}
}

// Failures returns the number of recoverable errors absorbed during the run.
func (r *Report) Failures() int {
	return r.UsersSkipped + r.NotificationFailures + r.DeactivationFailures
}
