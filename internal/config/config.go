package config

type Config interface {
	EnvConfig
	CorsConfig
	CrmConfig
	SessionConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetBaseURL() string
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
	Crm
	Session
}

func New() Config {
	return mainConfig{
		Session: NewSession(),
	}
}
