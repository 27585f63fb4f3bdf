// Package config loads and validates the enforcer's environment configuration.
package config

import (
	"net/mail"
	"os"
	"strconv"
	"strings"

	"github.com/locktivity/keyrotation-enforcer-aws/internal/errs"
)

// Defaults carried from the original deployment.
const (
	// DefaultNotifyAgeDays is the first-notice threshold applied when
	// NOTIFYKEYAGE is not set.
	DefaultNotifyAgeDays = 30

	// DefaultSESRegion is where notifications are sent from unless
	// SESREGION overrides it. IAM itself is global.
	DefaultSESRegion = "eu-west-1"
)

// Config holds all run parameters, read once at process start.
type Config struct {
	// SourceEmail is the verified sender address for rotation notices
	// (SOURCEMAIL, required). May carry an RFC 5322 display name.
	SourceEmail string

	// NotifyAgeDays is the key age in days at which the owner is first
	// notified (NOTIFYKEYAGE). Deactivation follows a fixed grace period
	// after this threshold.
	NotifyAgeDays int

	// SESRegion is the region for the notification client (SESREGION).
	SESRegion string

	// RoleARN optionally names a role to assume for the run (AUDITROLEARN).
	RoleARN string

	// ExternalID accompanies RoleARN when the trust policy requires one
	// (AUDITEXTERNALID).
	ExternalID string
}

// FromEnv builds a Config from the environment and validates it.
// A missing or malformed required value yields errs.ErrConfiguration.
func FromEnv() (*Config, error) {
	cfg := &Config{
		SourceEmail: strings.TrimSpace(os.Getenv("SOURCEMAIL")),
		SESRegion:   strings.TrimSpace(os.Getenv("SESREGION")),
		RoleARN:     strings.TrimSpace(os.Getenv("AUDITROLEARN")),
		ExternalID:  strings.TrimSpace(os.Getenv("AUDITEXTERNALID")),
	}

	cfg.NotifyAgeDays = DefaultNotifyAgeDays
	if raw := strings.TrimSpace(os.Getenv("NOTIFYKEYAGE")); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil {
			return nil, errs.Wrapf(errs.ErrConfiguration, "NOTIFYKEYAGE %q is not a whole number of days", raw)
		}
		cfg.NotifyAgeDays = days
	}

	if cfg.SESRegion == "" {
		cfg.SESRegion = DefaultSESRegion
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the invariants the run depends on.
func (c *Config) Validate() error {
	if c.SourceEmail == "" {
		return errs.Wrapf(errs.ErrConfiguration, "SOURCEMAIL is required")
	}
	if _, err := mail.ParseAddress(c.SourceEmail); err != nil {
		return errs.Wrapf(errs.ErrConfiguration, "SOURCEMAIL %q is not a valid address", c.SourceEmail)
	}

	if c.NotifyAgeDays <= 0 {
		return errs.Wrapf(errs.ErrConfiguration, "NOTIFYKEYAGE must be positive, got %d", c.NotifyAgeDays)
	}

	if c.RoleARN == "" && c.ExternalID != "" {
		return errs.Wrapf(errs.ErrConfiguration, "AUDITEXTERNALID is set without AUDITROLEARN")
	}

	return nil
}
