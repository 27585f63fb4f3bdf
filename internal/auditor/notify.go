package auditor

import (
	"context"
	"fmt"
	"strings"

	"github.com/locktivity/keyrotation-enforcer-aws/internal/aws"
)

// ownerContact resolves a user's contact email at most once per run and
// shares the answer across that user's keys.
type ownerContact struct {
	client   aws.Client
	userName string

	resolved bool
	email    string
}

func newOwnerContact(client aws.Client, userName string) *ownerContact {
	return &ownerContact{client: client, userName: userName}
}

// resolve returns the owner's address. A missing or blank contact tag
// yields "" without an error; an error means the tags could not be read.
func (o *ownerContact) resolve(ctx context.Context) (string, error) {
	if o.resolved {
		return o.email, nil
	}

	tags, err := o.client.ListUserTags(ctx, o.userName)
	if err != nil {
		return "", err
	}

	o.email = contactFromTags(tags)
	o.resolved = true
	return o.email, nil
}

// contactFromTags returns the owner email recorded on the user, or ""
// when the contact tag is absent or blank.
func contactFromTags(tags []aws.Tag) string {
	for _, tag := range tags {
		if tag.Key == ContactTagKey {
			return strings.TrimSpace(tag.Value)
		}
	}
	return ""
}

// rotationNotice composes the first-notice email for one key.
func rotationNotice(from, to, accessKeyID string, daysLeft int) aws.Email {
	return aws.Email{
		From:    from,
		To:      to,
		Subject: fmt.Sprintf("Rotate your AWS Credentials (KeyID: %s)", accessKeyID),
		Body: fmt.Sprintf(
			"Dear %s,\n\nPlease rotate your AWS Access Key %s immediately.\nIt will be disabled in %s if not rotated.\n\nYour AWS Keyrotation Service",
			to, accessKeyID, formatDays(daysLeft),
		),
	}
}

// formatDays renders a day count with the right plural.
func formatDays(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}
