package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type BaseEnv struct {
	Env      string `envconfig:"ENV" default:"local"`
	HTTPHost string `envconfig:"HTTP_HOST" default:""`
	HTTPPort string `envconfig:"HTTP_PORT" default:"3200"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"debug"`
	APIKey   string `envconfig:"API_KEY" required:"true"`
}

type AzureDevOpsEnv struct {
	OrgURL string `envconfig:"ORG_URL" required:"true"`
	Token  string `envconfig:"TOKEN" required:"true"`
}

type CloneEnv struct {
	PollInterval    time.Duration `envconfig:"POLL_INTERVAL" default:"1s"`
	PollTimeout     time.Duration `envconfig:"POLL_TIMEOUT" default:"5m"`
	RepoConcurrency int           `envconfig:"REPO_CONCURRENCY" default:"4"`
}

type StorageEnv struct {
	Type    string `envconfig:"STORAGE_TYPE" default:"local"`
	BaseDir string `envconfig:"STORAGE_BASE_DIR" default:".blueprint/data"`
	// S3 settings (used when Type == "s3")
	S3Bucket string `envconfig:"S3_BUCKET"`
	S3Prefix string `envconfig:"S3_PREFIX" default:"blueprint/"`
	S3Region string `envconfig:"S3_REGION" default:"ap-northeast-1"`
}

type Env struct {
	BaseEnv
	AzureDevOpsEnv
	CloneEnv
	StorageEnv
}

// CLIEnv is the subset of Env the command line tool needs. It skips the
// server-only settings so users don't have to set an API key to run a clone.
type CLIEnv struct {
	AzureDevOpsEnv
	CloneEnv
}

const namespace = "BLUEPRINT"

func LoadEnv() (*Env, error) {
	var env Env
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func LoadCLIEnv() (*CLIEnv, error) {
	var env CLIEnv
	if err := envconfig.Process(namespace, &env); err != nil {
		return nil, fmt.Errorf("failed to load env: %w", err)
	}
	return &env, nil
}

func (e *BaseEnv) SlogLevel() slog.Level {
	if e == nil {
		return slog.LevelDebug
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(e.LogLevel)); err != nil {
		return slog.LevelDebug
	}
	return level
}

func BaseEnvFromEnv(env *Env) *BaseEnv {
	return &env.BaseEnv
}

func AzureDevOpsEnvFromEnv(env *Env) *AzureDevOpsEnv {
	return &env.AzureDevOpsEnv
}

func CloneEnvFromEnv(env *Env) *CloneEnv {
	return &env.CloneEnv
}

func StorageEnvFromEnv(env *Env) *StorageEnv {
	return &env.StorageEnv
}
