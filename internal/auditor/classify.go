package auditor

import (
	"math"
	"time"
)

// Classification is the action a key's age calls for.
type Classification string

const (
	// ClassOK marks a key younger than the notify threshold.
	ClassOK Classification = "ok"

	// ClassNotify marks a key at or past the notify threshold but still
	// inside the grace period.
	ClassNotify Classification = "notify"

	// ClassDeactivate marks a key whose grace period has run out.
	ClassDeactivate Classification = "deactivate"
)

// cutoffs holds the two creation-date thresholds derived for one run.
// A key created at or before a cutoff has crossed the matching age
// threshold.
type cutoffs struct {
	notify     time.Time
	deactivate time.Time
}

// newCutoffs derives both thresholds from the run's reference time.
func newCutoffs(now time.Time, notifyAgeDays int) cutoffs {
	return cutoffs{
		notify:     now.AddDate(0, 0, -notifyAgeDays),
		deactivate: now.AddDate(0, 0, -(notifyAgeDays + GracePeriodDays)),
	}
}

// classify maps a key's creation date onto the action its age calls for.
// It is a pure function of the creation date and the run's cutoffs, so
// repeated runs over an unchanged key always agree.
func classify(createDate time.Time, cut cutoffs) Classification {
	if createDate.After(cut.notify) {
		return ClassOK
	}
	if createDate.After(cut.deactivate) {
		return ClassNotify
	}
	return ClassDeactivate
}

// deactivateOn returns the instant a key created at the given time crosses
// the deactivation threshold.
func deactivateOn(createDate time.Time, notifyAgeDays int) time.Time {
	return createDate.AddDate(0, 0, notifyAgeDays+GracePeriodDays)
}

// daysUntil returns the whole days from now until t, rounding partial days
// up and clamping at zero once t has passed.
func daysUntil(now, t time.Time) int {
	d := t.Sub(now)
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Hours() / 24))
}

// ageInDays returns the key age in whole days, truncated.
func ageInDays(now, createDate time.Time) int {
	if createDate.After(now) {
		return 0
	}
	return int(now.Sub(createDate).Hours() / 24)
}
