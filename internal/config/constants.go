package config

const (
	defaultPort = 2388

	defaultDBHost    = "127.0.0.1"
	defaultDBPort    = 3306
	defaultDBUser    = "root"
	defaultDBName    = "trust_site"
	defaultDBCharset = "utf8mb4"
	defaultDBLoc     = "Local"
)
