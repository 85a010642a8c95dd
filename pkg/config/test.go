package config

func loadTestConfig(cfg *Config) {
	cfg.AdminKey = "test-admin-key"
	cfg.RootFolderID = "test-root-folder"
	cfg.ServerHost = "127.0.0.1"
	cfg.ServerPort = 0
}
