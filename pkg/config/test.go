package config

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = ":memory:"
	cfg.JWTSecret = "test-secret"
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
}

// NewForTest returns a config suitable for tests without consulting the
// environment or config files.
func NewForTest() *Config {
	cfg := &Config{
		DatabaseConnectRetryCount: 1,
		DatabaseMaxRetries:        1,
		PageSize:                  10,
	}
	loadTestConfig(cfg)
	return cfg
}
