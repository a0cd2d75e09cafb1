package config

import (
	"os"
	"strconv"
	"time"
)

const (
	appNameVar        = "APP_NAME"
	storeBackendVar   = "SESSION_STORE"
	storePathVar      = "SESSION_STORE_PATH"
	redisAddrVar      = "REDIS_ADDR"
	redisNamespaceVar = "REDIS_NAMESPACE"
	graceWindowMSVar  = "GUARD_GRACE_WINDOW_MS"
)

type EnvVars struct{}

var _ Config = EnvVars{}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "LawBridge Session")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func (EnvVars) GetStoreBackend() StoreBackend {
	switch GetEnv(storeBackendVar, "memory") {
	case "file":
		return StoreFile
	case "redis":
		return StoreRedis
	default:
		return StoreMemory
	}
}

func (EnvVars) GetStorePath() string {
	return GetEnv(storePathVar, "./data/session.json")
}

func (EnvVars) GetRedisAddr() string {
	return GetEnv(redisAddrVar, "localhost:6379")
}

func (EnvVars) GetRedisNamespace() string {
	return GetEnv(redisNamespaceVar, "session:lawbridge")
}

// GetGraceWindow returns the route guard grace window. Unparseable values
// fall back to 300ms.
func (EnvVars) GetGraceWindow() time.Duration {
	raw := GetEnv(graceWindowMSVar, "300")
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		ms = 300
	}
	return time.Duration(ms) * time.Millisecond
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
