package config

func loadProductionConfig(cfg *Config) {
	cfg.DatabaseFilePath = "/data/tana.sqlite"
	cfg.ServerHost = "0.0.0.0"
}
