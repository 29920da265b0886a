package config

import "github.com/caarlos0/env/v9"

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBHost     string `env:"DB_HOST"` // e.g. tcp(host:3306) or unix(/cloudsql/instance)
	DBName     string `env:"DB_NAME"`
	DBPort     string `env:"DB_PORT" envDefault:"3306"`

	InstanceConnectionName string `env:"INSTANCE_CONNECTION_NAME"`

	FirebaseProjectID string `env:"FIREBASE_PROJECT_ID"`
	AdminToken        string `env:"ADMIN_TOKEN"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// HasDB reports whether enough settings exist to open a MySQL connection.
// Without them the server runs on the in-memory store.
func (c *Config) HasDB() bool {
	return c.DBUser != "" && c.DBName != "" && (c.DBHost != "" || c.InstanceConnectionName != "")
}
