package aws

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	iamtypes "github.com/aws/aws-sdk-go-v2/service/iam/types"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

// Client provides access to the identity directory and the notification
// channel.
type Client interface {
	// GetCallerIdentity returns the account ID of the current credentials.
	GetCallerIdentity(ctx context.Context) (string, error)

	// Identity directory
	ListUsers(ctx context.Context) ([]User, error)
	ListAccessKeys(ctx context.Context, userName string) ([]AccessKey, error)
	ListUserTags(ctx context.Context, userName string) ([]Tag, error)

	// Credential lifecycle
	DeactivateAccessKey(ctx context.Context, userName, accessKeyID string) error

	// Notification channel
	SendEmail(ctx context.Context, msg Email) error
}

// AWSClient implements the Client interface using AWS SDK v2.
type AWSClient struct {
	cfg       aws.Config
	sesRegion string
}

// NewClient creates a new AWS client using the default credential chain.
// IAM is global; sesRegion pins the notification client only.
func NewClient(ctx context.Context, sesRegion string) (*AWSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	return &AWSClient{cfg: cfg, sesRegion: sesRegion}, nil
}

// NewClientWithRole creates a new AWS client that assumes the specified role.
func NewClientWithRole(ctx context.Context, roleARN, externalID, sesRegion string) (*AWSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}

	stsClient := sts.NewFromConfig(cfg)
	creds := stscreds.NewAssumeRoleProvider(stsClient, roleARN, func(o *stscreds.AssumeRoleOptions) {
		if externalID != "" {
			o.ExternalID = &externalID
		}
		o.Duration = 1 * time.Hour
	})

	cfg.Credentials = aws.NewCredentialsCache(creds)

	return &AWSClient{cfg: cfg, sesRegion: sesRegion}, nil
}

// GetCallerIdentity returns the account ID of the current credentials.
func (c *AWSClient) GetCallerIdentity(ctx context.Context) (string, error) {
	stsClient := sts.NewFromConfig(c.cfg)
	output, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", fmt.Errorf("getting caller identity: %w", err)
	}
	return *output.Account, nil
}

// ListUsers lists all IAM users in the account.
func (c *AWSClient) ListUsers(ctx context.Context) ([]User, error) {
	iamClient := iam.NewFromConfig(c.cfg)
	paginator := iam.NewListUsersPaginator(iamClient, &iam.ListUsersInput{})

	var users []User
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing users: %w", err)
		}

		for _, u := range output.Users {
			users = append(users, User{
				UserName:   aws.ToString(u.UserName),
				ARN:        aws.ToString(u.Arn),
				CreateDate: aws.ToTime(u.CreateDate),
			})
		}
	}

	return users, nil
}

// ListAccessKeys lists all access keys of one user, any status.
func (c *AWSClient) ListAccessKeys(ctx context.Context, userName string) ([]AccessKey, error) {
	iamClient := iam.NewFromConfig(c.cfg)
	paginator := iam.NewListAccessKeysPaginator(iamClient, &iam.ListAccessKeysInput{
		UserName: aws.String(userName),
	})

	var keys []AccessKey
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing access keys for %s: %w", userName, err)
		}

		for _, md := range output.AccessKeyMetadata {
			keys = append(keys, AccessKey{
				AccessKeyID: aws.ToString(md.AccessKeyId),
				UserName:    aws.ToString(md.UserName),
				Status:      KeyStatus(md.Status),
				CreateDate:  md.CreateDate,
			})
		}
	}

	return keys, nil
}

// ListUserTags lists the tags attached to one user.
func (c *AWSClient) ListUserTags(ctx context.Context, userName string) ([]Tag, error) {
	iamClient := iam.NewFromConfig(c.cfg)
	paginator := iam.NewListUserTagsPaginator(iamClient, &iam.ListUserTagsInput{
		UserName: aws.String(userName),
	})

	var tags []Tag
	for paginator.HasMorePages() {
		output, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing tags for %s: %w", userName, err)
		}

		for _, t := range output.Tags {
			tags = append(tags, Tag{
				Key:   aws.ToString(t.Key),
				Value: aws.ToString(t.Value),
			})
		}
	}

	return tags, nil
}

// DeactivateAccessKey transitions one access key to Inactive. It never
// deletes or reactivates keys.
func (c *AWSClient) DeactivateAccessKey(ctx context.Context, userName, accessKeyID string) error {
	iamClient := iam.NewFromConfig(c.cfg)
	_, err := iamClient.UpdateAccessKey(ctx, &iam.UpdateAccessKeyInput{
		UserName:    aws.String(userName),
		AccessKeyId: aws.String(accessKeyID),
		Status:      iamtypes.StatusTypeInactive,
	})
	if err != nil {
		return fmt.Errorf("updating access key %s: %w", accessKeyID, err)
	}
	return nil
}

// SendEmail sends one plain-text message through SES.
func (c *AWSClient) SendEmail(ctx context.Context, msg Email) error {
	cfg := c.cfg.Copy()
	if c.sesRegion != "" {
		cfg.Region = c.sesRegion
	}
	sesClient := sesv2.NewFromConfig(cfg)

	_, err := sesClient.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination: &sestypes.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(msg.Subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(msg.Body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("sending email to %s: %w", msg.To, err)
	}
	return nil
}

// IsNotFound returns true if err is the API telling us the entity no longer
// exists, e.g. a user or key deleted between the listing and the follow-up
// call.
func IsNotFound(err error) bool {
	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchEntity"
}
