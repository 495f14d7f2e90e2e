package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// ParamGetter reads one secret parameter by name.
type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

type ssmAPI interface {
	GetParameter(ctx context.Context, in *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

// SSMGetter reads decrypted parameters from AWS SSM Parameter Store.
type SSMGetter struct {
	api ssmAPI
}

func NewSSMGetter(api ssmAPI) (*SSMGetter, error) {
	if api == nil {
		return nil, errors.New("config: ssm api must not be nil")
	}
	return &SSMGetter{api: api}, nil
}

// NewSSMGetterFromConfig builds an SSM client from the secrets section.
// Static credentials and a custom endpoint are used when set, for local stacks.
func NewSSMGetterFromConfig(ctx context.Context, sc SecretsConfig) (*SSMGetter, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(sc.Region),
	}
	if sc.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.StaticCredentialsProvider{
			Value: aws.Credentials{AccessKeyID: sc.AccessKeyID, SecretAccessKey: sc.SecretAccessKey},
		}))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("config: load aws config: %w", err)
	}

	client := ssm.NewFromConfig(awsCfg, func(o *ssm.Options) {
		if sc.Endpoint != "" {
			o.BaseEndpoint = aws.String(sc.Endpoint)
		}
	})
	return NewSSMGetter(client)
}

func (g *SSMGetter) GetParameter(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errors.New("config: parameter name is required")
	}

	out, err := g.api.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("config: get parameter %q: %w", name, err)
	}
	if out == nil || out.Parameter == nil || out.Parameter.Value == nil {
		return "", fmt.Errorf("config: parameter %q has no value", name)
	}
	return *out.Parameter.Value, nil
}

// ResolveAPIKey returns the provider credential. The environment value wins;
// otherwise the configured SSM parameter is read through getter. A lookup
// failure is logged and yields "" so the server still starts and reports the
// missing key per request.
func ResolveAPIKey(ctx context.Context, cfg *Config, getter ParamGetter, logger *slog.Logger) string {
	if cfg.Provider.APIKey != "" {
		return cfg.Provider.APIKey
	}
	if cfg.Secrets.SSMParameter == "" || getter == nil {
		return ""
	}

	key, err := getter.GetParameter(ctx, cfg.Secrets.SSMParameter)
	if err != nil {
		logger.Warn("provider key lookup failed", "parameter", cfg.Secrets.SSMParameter, "error", err)
		return ""
	}
	return strings.TrimSpace(key)
}
