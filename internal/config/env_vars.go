package config

import (
	"fmt"
	"os"
)

const (
	portEnvVar           = "PORT"
	appNameVar           = "APP_NAME"
	frontendOriginEnvVar = "FRONTEND_ORIGIN"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if port != "" || port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Canva Connect")
}

// GetFrontendOrigin returns the origin the OAuth callback redirects back to
// after the code exchange (e.g. the dev server of the display layer).
func (EnvVars) GetFrontendOrigin() string {
	return GetEnv(frontendOriginEnvVar, "http://127.0.0.1:5173")
}

func (EnvVars) GetEnv() string {
	env := os.Getenv("ENV")
	if env == "" {
		return "DEV"
	}
	return env
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}
