package config

import "os"

// Config holds runtime configuration, read from the environment. The Postgres
// store is used when DB_CONNECTION_STRING is set; otherwise record sets live
// as JSON documents under DataDir.
type Config struct {
	Port               string
	DBConnectionString string
	DataDir            string
	DefaultRepo        string
	SVNBinary          string
	SVNUsername        string
	SVNPassword        string
}

// Load reads configuration from the environment with defaults.
func Load() (*Config, error) {
	return &Config{
		Port:               getEnv("PORT", "8080"),
		DBConnectionString: getEnv("DB_CONNECTION_STRING", ""),
		DataDir:            getEnv("DATA_DIR", ".svnstat"),
		DefaultRepo:        getEnv("DEFAULT_REPO", ""),
		SVNBinary:          getEnv("SVN_BINARY", "svn"),
		SVNUsername:        getEnv("SVN_USERNAME", ""),
		SVNPassword:        getEnv("SVN_PASSWORD", ""),
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
