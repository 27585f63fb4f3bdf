// keyrotation-enforcer-aws enforces rotation of IAM access keys.
//
// The binary is designed to run as a scheduled AWS Lambda function behind
// an EventBridge rule. Invoked outside the Lambda runtime it performs a
// single enforcement pass directly, so the same build serves local and
// container use.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"

	"github.com/locktivity/keyrotation-enforcer-aws/internal/auditor"
	awsclient "github.com/locktivity/keyrotation-enforcer-aws/internal/aws"
	"github.com/locktivity/keyrotation-enforcer-aws/internal/config"
	"github.com/locktivity/keyrotation-enforcer-aws/internal/log"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	// Optional .env for local runs; the deployed function reads real env.
	_ = godotenv.Load()

	log.Init(os.Getenv("LOG_LEVEL"))

	ctx := context.Background()
	log.Info(ctx, "keyrotation enforcer starting", slog.String("version", Version))

	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		lambda.Start(run)
		return
	}

	report, err := run(ctx)
	if err != nil {
		log.Error(ctx, "enforcement run failed", err)
		os.Exit(1)
	}

	data, _ := json.Marshal(report)
	fmt.Println(string(data))
}

// run performs one enforcement pass and returns its report. It is the
// Lambda handler and the direct-execution body.
func run(ctx context.Context) (*auditor.Report, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	client, err := newClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a, err := auditor.New(auditor.Config{
		SourceEmail:   cfg.SourceEmail,
		NotifyAgeDays: cfg.NotifyAgeDays,
	}, client)
	if err != nil {
		return nil, err
	}

	return a.Run(ctx)
}

// newClient builds the AWS client, assuming a role when one is configured.
func newClient(ctx context.Context, cfg *config.Config) (*awsclient.AWSClient, error) {
	if cfg.RoleARN != "" {
		client, err := awsclient.NewClientWithRole(ctx, cfg.RoleARN, cfg.ExternalID, cfg.SESRegion)
		if err != nil {
			return nil, fmt.Errorf("creating AWS client with role: %w", err)
		}
		return client, nil
	}

	client, err := awsclient.NewClient(ctx, cfg.SESRegion)
	if err != nil {
		return nil, fmt.Errorf("creating AWS client: %w", err)
	}
	return client, nil
}
