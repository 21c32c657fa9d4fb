package config

type Config interface {
	EnvConfig
	CorsConfig
	CanvaConfig
	StorageConfig
	ExportConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetFrontendOrigin() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Canva
	Storage
	Export
}

func New() Config {
	return mainConfig{}
}
