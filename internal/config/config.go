// Package config loads the service configuration from an optional YAML file
// with environment-variable fallbacks, so that local runs need nothing but a
// handful of exported variables while deployments can ship a checked-in file.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries everything the service needs at startup.
type Config struct {
	Addr       string `yaml:"addr"`
	DBUser     string `yaml:"db_user"`
	DBPassword string `yaml:"db_password"`
	DBHost     string `yaml:"db_host"`
	DBName     string `yaml:"db_name"`
	JWTSecret  string `yaml:"jwt_secret"`
	GinLogging string `yaml:"gin_logging"`
}

// Load builds the configuration from environment variables and, if path is
// non-empty, overlays the values found in the YAML file at that path.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Addr:       getEnv("ADDR", ":8080"),
		DBUser:     getEnv("DBUSER", "root"),
		DBPassword: getEnv("DBPWD", ""),
		DBHost:     getEnv("DBHOST", "localhost:3306"),
		DBName:     getEnv("DBNAME", "touchbase"),
		JWTSecret:  getEnv("JWT_SECRET", "supersecretkey"),
		GinLogging: getEnv("GIN_LOGGING", "on"),
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
