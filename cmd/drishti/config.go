package main

import (
	"context"
	"fmt"

	"drishti/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/kelseyhightower/envconfig"
)

func loadConfig() (*types.Config, error) {
	c := new(types.Config)
	if err := envconfig.Process("", c); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}

	if c.DatabaseURL == "" {
		return nil, fmt.Errorf("set DATABASE_URL")
	}

	if c.TokenSigningKey == "" {
		return nil, fmt.Errorf("set TOKEN_SIGNING_KEY")
	}

	if c.StorageBackend == "s3" && c.S3BucketName == "" {
		return nil, fmt.Errorf("set S3_BUCKET_NAME when STORAGE_BACKEND=s3")
	}

	return c, nil
}

func loadAWSConfig(ctx context.Context) (aws.Config, error) {
	config, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load aws config: %w", err)
	}

	return config, nil
}
