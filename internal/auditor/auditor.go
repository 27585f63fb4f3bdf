// Package auditor enforces the access key rotation policy for an AWS account.
package auditor

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/locktivity/keyrotation-enforcer-aws/internal/aws"
	"github.com/locktivity/keyrotation-enforcer-aws/internal/errs"
	"github.com/locktivity/keyrotation-enforcer-aws/internal/log"
)

// Config holds the auditor configuration.
type Config struct {
	// SourceEmail is the verified sender address for rotation notices.
	SourceEmail string

	// NotifyAgeDays is the key age at which the owner is first notified.
	// Keys GracePeriodDays older than this are deactivated.
	NotifyAgeDays int

	// Now supplies the run's reference time. Defaults to time.Now.
	Now func() time.Time
}

// Auditor walks every user's active access keys once per run and applies
// the two-stage rotation policy: notify first, deactivate after the grace
// period. Key status lives in IAM, so a deactivated key drops out of all
// later runs on its own.
type Auditor struct {
	config Config
	client aws.Client
}

// New creates an Auditor backed by the given directory client.
func New(config Config, client aws.Client) (*Auditor, error) {
	if client == nil {
		return nil, errs.Wrapf(errs.ErrConfiguration, "nil AWS client")
	}
	if config.SourceEmail == "" {
		return nil, errs.Wrapf(errs.ErrConfiguration, "source email is required")
	}
	if config.NotifyAgeDays <= 0 {
		return nil, errs.Wrapf(errs.ErrConfiguration, "notify age must be positive, got %d", config.NotifyAgeDays)
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	return &Auditor{config: config, client: client}, nil
}

// Run scans every user's access keys once and applies the policy. It fails
// only when the user directory cannot be listed at all; per-user and
// per-key failures are logged, counted in the report, and isolated from
// sibling processing.
func (a *Auditor) Run(ctx context.Context) (*Report, error) {
	now := a.config.Now().UTC()
	runID := uuid.NewString()
	ctx = log.InjectRun(ctx, runID)

	report := NewReport(runID, now, a.config.NotifyAgeDays)
	cut := newCutoffs(now, a.config.NotifyAgeDays)

	// The account ID is advisory: tag logs and report when resolvable.
	if accountID, err := a.client.GetCallerIdentity(ctx); err != nil {
		log.Warn(ctx, "could not resolve account identity", log.ErrAttr(err))
	} else {
		ctx = log.InjectAccount(ctx, accountID)
		report.AccountID = accountID
	}

	log.Info(ctx, "starting key rotation audit",
		slog.Int("notifyAgeDays", report.NotifyAgeDays),
		slog.Int("deactivateAgeDays", report.DeactivateAgeDays),
	)

	users, err := a.client.ListUsers(ctx)
	if err != nil {
		return nil, errs.Wrap(errs.ErrDirectoryLookup, err)
	}

	for _, user := range users {
		a.auditUser(log.InjectUser(ctx, user.UserName), user, cut, now, report)
	}

	log.Info(ctx, "key rotation audit finished",
		slog.Int("usersScanned", report.UsersScanned),
		slog.Int("usersSkipped", report.UsersSkipped),
		slog.Int("keysScanned", report.KeysScanned),
		slog.Int("keysCompliant", report.KeysCompliant),
		slog.Int("keysNotified", report.KeysNotified),
		slog.Int("keysDeactivated", report.KeysDeactivated),
		slog.Int("failures", report.Failures()),
	)

	return report, nil
}

// auditUser applies the policy to every key of one user. Lookup failures
// are logged and counted, never propagated.
func (a *Auditor) auditUser(ctx context.Context, user aws.User, cut cutoffs, now time.Time, report *Report) {
	keys, err := a.client.ListAccessKeys(ctx, user.UserName)
	if err != nil {
		if aws.IsNotFound(err) {
			// User deleted between the directory listing and this lookup.
			log.Info(ctx, "user no longer exists, skipping")
			return
		}
		report.UsersSkipped++
		log.Error(ctx, "listing access keys failed", errs.Wrap(errs.ErrDirectoryLookup, err))
		return
	}

	report.UsersScanned++
	owner := newOwnerContact(a.client, user.UserName)

	for _, key := range keys {
		a.auditKey(log.InjectKey(ctx, key.AccessKeyID), key, owner, cut, now, report)
	}
}

// auditKey classifies one key and performs the action its age calls for.
func (a *Auditor) auditKey(ctx context.Context, key aws.AccessKey, owner *ownerContact, cut cutoffs, now time.Time, report *Report) {
	if !key.IsActive() {
		report.KeysSkipped++
		log.Debug(ctx, "key is inactive, excluded from scan")
		return
	}
	if key.CreateDate == nil {
		// Without an age the policy cannot classify; deactivation is
		// destructive, so leave the key alone.
		report.KeysSkipped++
		log.Warn(ctx, "active key has no creation date, skipping")
		return
	}

	report.KeysScanned++
	created := key.CreateDate.UTC()

	class := classify(created, cut)
	log.Debug(ctx, "key classified",
		slog.String("classification", string(class)),
		slog.Int("ageDays", ageInDays(now, created)),
	)

	switch class {
	case ClassOK:
		report.KeysCompliant++
	case ClassNotify:
		a.sendNotice(ctx, key, owner, now, report)
	case ClassDeactivate:
		a.deactivate(ctx, key, now, report)
	}
}

// sendNotice emails the key owner how long remains before deactivation.
// Re-sent on every run inside the notify window as a repeated reminder.
func (a *Auditor) sendNotice(ctx context.Context, key aws.AccessKey, owner *ownerContact, now time.Time, report *Report) {
	to, err := owner.resolve(ctx)
	if err != nil {
		report.NotificationFailures++
		log.Error(ctx, "resolving owner contact failed", errs.Wrap(errs.ErrDirectoryLookup, err))
		return
	}
	if to == "" {
		report.NotificationsSkipped++
		log.Warn(ctx, "contact details for credentials not provided", slog.String("tag", ContactTagKey))
		return
	}

	daysLeft := daysUntil(now, deactivateOn(key.CreateDate.UTC(), a.config.NotifyAgeDays))
	msg := rotationNotice(a.config.SourceEmail, to, key.AccessKeyID, daysLeft)

	if err := a.client.SendEmail(ctx, msg); err != nil {
		report.NotificationFailures++
		log.Error(ctx, "sending rotation notice failed", errs.Wrap(errs.ErrNotification, err))
		return
	}

	report.KeysNotified++
	log.Info(ctx, "rotation notice sent",
		slog.String("to", to),
		slog.Int("daysLeft", daysLeft),
	)
}

// deactivate disables one key whose grace period has run out. The key
// stays active and is retried next run if the update fails.
func (a *Auditor) deactivate(ctx context.Context, key aws.AccessKey, now time.Time, report *Report) {
	if err := a.client.DeactivateAccessKey(ctx, key.UserName, key.AccessKeyID); err != nil {
		report.DeactivationFailures++
		log.Error(ctx, "deactivating access key failed", errs.Wrap(errs.ErrDeactivation, err))
		return
	}

	report.KeysDeactivated++
	log.Warn(ctx, "access key deactivated",
		slog.Int("ageDays", ageInDays(now, key.CreateDate.UTC())),
	)
}
