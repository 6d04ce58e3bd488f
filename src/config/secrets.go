package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// LoadSecrets merges the JSON key/value secret named by AWS_SECRET_NAME into
// the process environment. Variables that are already set win.
func LoadSecrets(ctx context.Context) error {
	name := os.Getenv("AWS_SECRET_NAME")
	if name == "" {
		return nil
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading aws config: %w", err)
	}
	client := secretsmanager.NewFromConfig(cfg)
	out, err := client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: &name,
	})
	if err != nil {
		return fmt.Errorf("retrieving secret %s: %w", name, err)
	}
	if out.SecretString == nil {
		return nil
	}
	values := map[string]string{}
	if err := json.Unmarshal([]byte(*out.SecretString), &values); err != nil {
		return fmt.Errorf("decoding secret %s: %w", name, err)
	}
	return applySecrets(values)
}

func applySecrets(values map[string]string) error {
	applied := 0
	for k, v := range values {
		if _, ok := os.LookupEnv(k); ok {
			continue
		}
		if err := os.Setenv(k, v); err != nil {
			return err
		}
		applied++
	}
	log.Printf("[Secrets] applied %d values\n", applied)
	return nil
}
