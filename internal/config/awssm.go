package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// resolveAWSSecretsManager resolves an ${AWS_SM:secret-name} reference using
// the default credential chain. Specforge stores only string secrets (git
// tokens, connection strings); binary secrets are rejected.
func resolveAWSSecretsManager(ref string) (string, error) {
	ctx := context.Background()
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("loading AWS credentials: %w", err)
	}

	out, err := secretsmanager.NewFromConfig(awsCfg).GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(ref),
	})
	if err != nil {
		return "", fmt.Errorf("reading secret %q from AWS Secrets Manager: %w", ref, err)
	}
	if out.SecretString == nil {
		return "", fmt.Errorf("secret %q is binary; string secret expected", ref)
	}
	return *out.SecretString, nil
}
