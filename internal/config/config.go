package config

import "time"

// StoreBackend selects the persistent session store implementation.
type StoreBackend string

const (
	StoreMemory StoreBackend = "memory"
	StoreFile   StoreBackend = "file"
	StoreRedis  StoreBackend = "redis"
)

type Config interface {
	GetAppName() string
	GetEnv() string
	GetStoreBackend() StoreBackend
	GetStorePath() string
	GetRedisAddr() string
	GetRedisNamespace() string
	GetGraceWindow() time.Duration
}

type mainConfig struct {
	EnvVars
}

func New() Config {
	return mainConfig{}
}
