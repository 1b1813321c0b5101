package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database    DatabaseConfig    `mapstructure:"database"`
	Application ApplicationConfig `mapstructure:"application"`
	Parser      ParserConfig      `mapstructure:"parser"`
	AI          AIConfig          `mapstructure:"ai"`
}

type ApplicationConfig struct {
	Name    string        `mapstructure:"name"`
	Version string        `mapstructure:"version"`
	Host    string        `mapstructure:"host"`
	Port    int           `mapstructure:"port"`
	Storage StorageConfig `mapstructure:"storage"`
}

type StorageConfig struct {
	// Stage is watched for incoming .pptx files; Library receives them after
	// ingestion.
	Stage   string `mapstructure:"stage"`
	Library string `mapstructure:"library"`
}

type ParserConfig struct {
	// MaxFileSizeMB caps uploaded and staged decks.
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

func (c *ParserConfig) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeMB * 1024 * 1024
}

type AIConfig struct {
	Provider string `mapstructure:"provider"`
	Key      string `mapstructure:"key"`
	Model    string `mapstructure:"model"`
}

type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
	Options  string `mapstructure:"options"`
}

func (c *DatabaseConfig) GetConnectStr() string {
	if c.URL != "" {
		return c.URL
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}

	connStr := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, sslmode)

	if c.Options != "" {
		// Basic URL encoding for the options value: space -> %20
		encodedOptions := strings.ReplaceAll(c.Options, " ", "%20")
		connStr += fmt.Sprintf("&options=%s", encodedOptions)
	}

	return connStr
}

func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not found, using system environment variables")
	}

	viper.SetConfigFile("config.yaml") // Support optional config.yaml
	viper.AutomaticEnv()

	// Environment variable mappings
	mappings := []struct {
		key, env string
	}{
		{"database.url", "DB_URL"},
		{"database.host", "PG_HOST"},
		{"database.port", "PG_PORT"},
		{"database.user", "PG_USER"},
		{"database.password", "PG_PASSWORD"},
		{"database.dbname", "PG_DB"},
		{"database.sslmode", "PG_SSLMODE"},
		{"database.options", "PG_OPTIONS"},
		{"application.host", "HOST"},
		{"application.port", "PORT"},

		// Storage
		{"application.storage.stage", "STORAGE_STAGE"},
		{"application.storage.library", "STORAGE_LIBRARY"},

		// Parser
		{"parser.max_file_size_mb", "PARSER_MAX_FILE_SIZE_MB"},

		// AI
		{"ai.provider", "AI_PROVIDER"},
		{"ai.key", "GEMINI_KEY"},
		{"ai.model", "GEMINI_MODEL"},
	}

	for _, m := range mappings {
		viper.BindEnv(m.key, m.env)
	}

	// Defaults
	viper.SetDefault("application.name", "lektor")
	viper.SetDefault("application.port", 8080)
	viper.SetDefault("application.storage.stage", "stage")
	viper.SetDefault("application.storage.library", "library")
	viper.SetDefault("parser.max_file_size_mb", 100)
	viper.SetDefault("ai.model", "gemini-1.5-flash")

	if err := viper.ReadInConfig(); err != nil {
		// Ignore if config.yaml is missing
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.AI.Provider == "" {
		cfg.AI.Provider = "gemini"
	}

	return &cfg, nil
}
