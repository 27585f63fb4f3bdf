// Package aws provides AWS API client functionality.
package aws

import "time"

// KeyStatus is the lifecycle state of an access key as reported by IAM.
type KeyStatus string

const (
	// KeyStatusActive marks a key that can be used for authentication.
	KeyStatusActive KeyStatus = "Active"

	// KeyStatusInactive marks a key that has been disabled.
	KeyStatusInactive KeyStatus = "Inactive"
)

// User represents an IAM user in the identity directory.
type User struct {
	UserName   string
	ARN        string
	CreateDate time.Time
}

// AccessKey represents one access key attached to a user.
type AccessKey struct {
	AccessKeyID string
	UserName    string
	Status      KeyStatus
	CreateDate  *time.Time // nil when the directory did not supply one
}

// IsActive returns true if the key can currently be used.
func (k AccessKey) IsActive() bool {
	return k.Status == KeyStatusActive
}

// Tag is a single key/value tag attached to a user.
type Tag struct {
	Key   string
	Value string
}

// Email is a plain-text message for the notification channel.
type Email struct {
	From    string
	To      string
	Subject string
	Body    string
}
