package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// FileValues mirrors the optional YAML configuration file. Anything left
// empty falls through to environment variables and built-in defaults.
type FileValues struct {
	Server struct {
		Port           string `yaml:"port"`
		AppName        string `yaml:"app_name"`
		FrontendOrigin string `yaml:"frontend_origin"`
	} `yaml:"server"`
	Canva struct {
		ClientID         string `yaml:"client_id"`
		ClientSecret     string `yaml:"client_secret"`
		AuthorizationURL string `yaml:"authorization_url"`
		TokenURL         string `yaml:"token_url"`
		APIBaseURL       string `yaml:"api_base_url"`
		RedirectURI      string `yaml:"redirect_uri"`
		Scopes           string `yaml:"scopes"`
	} `yaml:"canva"`
	Storage struct {
		UploadDir string `yaml:"upload_dir"`
	} `yaml:"storage"`
	Export struct {
		PollInterval string `yaml:"poll_interval"`
		MaxAttempts  int    `yaml:"max_attempts"`
		AuthStateTTL string `yaml:"auth_state_ttl"`
	} `yaml:"export"`
	Cors struct {
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"cors"`
}

type fileConfig struct {
	mainConfig
	values FileValues
}

// Load builds the configuration, reading the YAML file named by CONFIG_FILE
// when one is set.
func Load() (Config, error) {
	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		return New(), nil
	}
	return FromFile(path)
}

// FromFile layers a YAML configuration file over the environment config.
func FromFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.FromFile read %q: %w", path, err)
	}

	var values FileValues
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("config.FromFile parse %q: %w", path, err)
	}

	return fileConfig{values: values}, nil
}

func orEnv(fileValue string, envValue string) string {
	if fileValue != "" {
		return fileValue
	}
	return envValue
}

func (f fileConfig) GetPort() string {
	if f.values.Server.Port != "" {
		port := f.values.Server.Port
		if port[0] != ':' {
			port = ":" + port
		}
		return port
	}
	return f.mainConfig.GetPort()
}

func (f fileConfig) GetAppName() string {
	return orEnv(f.values.Server.AppName, f.mainConfig.GetAppName())
}

func (f fileConfig) GetFrontendOrigin() string {
	return orEnv(f.values.Server.FrontendOrigin, f.mainConfig.GetFrontendOrigin())
}

func (f fileConfig) GetClientID() string {
	return orEnv(f.values.Canva.ClientID, f.mainConfig.GetClientID())
}

func (f fileConfig) GetClientSecret() string {
	return orEnv(f.values.Canva.ClientSecret, f.mainConfig.GetClientSecret())
}

func (f fileConfig) GetAuthorizationURL() string {
	return orEnv(f.values.Canva.AuthorizationURL, f.mainConfig.GetAuthorizationURL())
}

func (f fileConfig) GetTokenURL() string {
	return orEnv(f.values.Canva.TokenURL, f.mainConfig.GetTokenURL())
}

func (f fileConfig) GetAPIBaseURL() string {
	return orEnv(f.values.Canva.APIBaseURL, f.mainConfig.GetAPIBaseURL())
}

func (f fileConfig) GetRedirectURI() string {
	return orEnv(f.values.Canva.RedirectURI, f.mainConfig.GetRedirectURI())
}

func (f fileConfig) GetScopes() string {
	return orEnv(f.values.Canva.Scopes, f.mainConfig.GetScopes())
}

func (f fileConfig) GetUploadDir() string {
	return orEnv(f.values.Storage.UploadDir, f.mainConfig.GetUploadDir())
}

func (f fileConfig) GetExportPollInterval() time.Duration {
	if d, err := time.ParseDuration(f.values.Export.PollInterval); err == nil && d > 0 {
		return d
	}
	return f.mainConfig.GetExportPollInterval()
}

func (f fileConfig) GetExportMaxAttempts() int {
	if f.values.Export.MaxAttempts > 0 {
		return f.values.Export.MaxAttempts
	}
	return f.mainConfig.GetExportMaxAttempts()
}

func (f fileConfig) GetAuthStateTTL() time.Duration {
	if d, err := time.ParseDuration(f.values.Export.AuthStateTTL); err == nil && d > 0 {
		return d
	}
	return f.mainConfig.GetAuthStateTTL()
}

func (f fileConfig) GetAllowedOrigins() AllowedOrigins {
	if len(f.values.Cors.AllowedOrigins) == 0 {
		return f.mainConfig.GetAllowedOrigins()
	}
	origins := AllowedOrigins{}
	for _, o := range f.values.Cors.AllowedOrigins {
		origins[o] = nullValue{}
	}
	return origins
}
