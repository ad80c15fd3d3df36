package appconfig

import (
	"bytes"
	"errors"
	"html/template"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v2"
)

// Config holds all configuration details
type Config struct {
	Host          string              `yaml:"host"`
	BasePath      string              `yaml:"basePath"`
	Database      DatabaseConfig      `yaml:"database"`
	Pulsar        PulsarConfig        `yaml:"pulsar"`
	AWS           AWSConfig           `yaml:"aws"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Engine        EngineConfig        `yaml:"engine"`
}

// DatabaseConfig defines the database connection details
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	Source string `yaml:"source"`
}

// PulsarConfig defines the messaging system connection details
type PulsarConfig struct {
	URL           string `yaml:"url"`
	TopicProducer string `yaml:"topicProducer"`
}

type AWSConfig struct {
	Region string `yaml:"region"`
}

// NotificationsConfig defines the email chain for cycle announcements
type NotificationsConfig struct {
	Enabled     bool   `yaml:"enabled"`
	SenderEmail string `yaml:"senderEmail"`
}

// EngineConfig holds the rotation-policy knobs. By default a group may have
// only one active cycle at a time and any member may be picked as recipient.
type EngineConfig struct {
	AllowParallelCycles  bool `yaml:"allowParallelCycles"`
	EnforceRotationOrder bool `yaml:"enforceRotationOrder"`
}

// LoadConfig loads and parses the configuration from a given file path
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		err := errors.New("config file path is required")
		log.Fatal().Err(err).Msg("config file not provided")
		return nil, err
	}

	// Parse the template file
	tmpl, err := template.ParseFiles(path)
	if err != nil {
		log.Fatal().Err(err).Msg("error parsing config file template")
		return nil, err
	}

	// Create a map of environment variables
	envVars := loadEnvVars()

	// Execute the template with environment variables
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, envVars)
	if err != nil {
		log.Fatal().Err(err).Msg("error executing config file template")
		return nil, err
	}

	// Load and unmarshal the YAML
	var config Config
	if err := yaml.Unmarshal(buf.Bytes(), &config); err != nil {
		log.Fatal().Err(err).Msg("failed to unmarshal config YAML")
		return nil, err
	}

	applyDefaults(&config)

	return &config, nil
}

func applyDefaults(c *Config) {
	if c.BasePath == "" {
		c.BasePath = "/api/ayuuto"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
}

// loadEnvVars loads environment variables into a map
func loadEnvVars() map[string]string {
	envVars := make(map[string]string)
	for _, env := range os.Environ() {
		kv := strings.SplitN(env, "=", 2)
		if len(kv) == 2 {
			envVars[kv[0]] = kv[1]
		}
	}
	return envVars
}
