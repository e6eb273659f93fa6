package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	PostgresAddress  string
	PostgresPort     string
	PostgresDB       string
	PostgresUsername string
	PostgresPassword string

	HTTPPort   string
	NumWorkers int

	GeminiModel string
}

// ProcessEnvironmentVariables builds the config from the environment. A
// local .env file is loaded first when present. Defaults match the docker
// compose setup.
func ProcessEnvironmentVariables() (*Config, error) {
	_ = godotenv.Load()

	env := Config{
		PostgresAddress:  "localhost",
		PostgresPort:     "5433",
		PostgresDB:       "postgres",
		PostgresUsername: "postgres",
		PostgresPassword: "testpassword",
		HTTPPort:         "9446",
		NumWorkers:       4,
		GeminiModel:      "gemini-2.0-flash",
	}

	setIfPresent(&env.PostgresAddress, "POSTGRES_ADDRESS")
	setIfPresent(&env.PostgresPort, "POSTGRES_PORT")
	setIfPresent(&env.PostgresDB, "POSTGRES_DB")
	setIfPresent(&env.PostgresUsername, "POSTGRES_USERNAME")
	setIfPresent(&env.PostgresPassword, "POSTGRES_PASSWORD")
	setIfPresent(&env.HTTPPort, "HTTP_PORT")
	setIfPresent(&env.GeminiModel, "GEMINI_MODEL")

	if raw := os.Getenv("NUM_WORKERS"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		env.NumWorkers = n
	}

	return &env, nil
}

// PostgresURL builds the connection string shared by the pgx pool and the
// migration runner.
func (c *Config) PostgresURL() string {
	return "postgres://" + c.PostgresUsername + ":" +
		c.PostgresPassword + "@" + c.PostgresAddress + ":" +
		c.PostgresPort + "/" + c.PostgresDB + "?sslmode=disable"
}

func setIfPresent(target *string, key string) {
	if value := os.Getenv(key); value != "" {
		*target = value
	}
}
