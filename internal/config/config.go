package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server ServerConfig
	Engine EngineConfig
	Course CourseConfig
	Jobs   JobsConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port           string
	Env            string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins []string
}

// EngineConfig holds the weight-computation and fusion tunables.
// Alpha/Beta/Gamma are the raw-weight coefficients for difficulty,
// participation, and drift; DecayLambda is the per-day recency decay.
type EngineConfig struct {
	Alpha        float64
	Beta         float64
	Gamma        float64
	DecayLambda  float64
	DriftWindow  int // trailing snapshots used for drift measurement
	ImputeWindow int // trailing snapshots used for imputation fallback
}

// CourseConfig holds course bonus settings, including the source/topic
// credibility tables and their fallback weights for unknown entries
type CourseConfig struct {
	BaseBonus           float64
	MaxBonus            float64
	DecayLambda         float64
	SourceWeights       map[string]float64
	TopicWeights        map[string]float64
	DefaultSourceWeight float64
	DefaultTopicWeight  float64
}

// JobsConfig holds background job settings
type JobsConfig struct {
	RefreshInterval time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			Env:            getEnv("SERVER_ENV", "development"),
			ReadTimeout:    getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:   getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			AllowedOrigins: getSliceEnv("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Engine: EngineConfig{
			Alpha:        getFloatEnv("ENGINE_ALPHA", 0.5),
			Beta:         getFloatEnv("ENGINE_BETA", 0.3),
			Gamma:        getFloatEnv("ENGINE_GAMMA", 0.2),
			DecayLambda:  getFloatEnv("ENGINE_DECAY_LAMBDA", 0.01),
			DriftWindow:  getIntEnv("ENGINE_DRIFT_WINDOW", 5),
			ImputeWindow: getIntEnv("ENGINE_IMPUTE_WINDOW", 3),
		},
		Course: CourseConfig{
			BaseBonus:   getFloatEnv("COURSE_BASE_BONUS", 50),
			MaxBonus:    getFloatEnv("COURSE_MAX_BONUS", 200),
			DecayLambda: getFloatEnv("COURSE_DECAY_LAMBDA", 0.01),
			SourceWeights: getWeightTableEnv("COURSE_SOURCE_WEIGHTS", map[string]float64{
				"IIT":      1.0,
				"NPTEL":    0.9,
				"Coursera": 0.7,
				"Udemy":    0.5,
			}),
			TopicWeights: getWeightTableEnv("COURSE_TOPIC_WEIGHTS", map[string]float64{
				"DSA":     1.0,
				"AI":      0.9,
				"Web Dev": 0.8,
			}),
			DefaultSourceWeight: getFloatEnv("COURSE_DEFAULT_SOURCE_WEIGHT", 0.4),
			DefaultTopicWeight:  getFloatEnv("COURSE_DEFAULT_TOPIC_WEIGHT", 0.6),
		},
		Jobs: JobsConfig{
			RefreshInterval: getDurationEnv("SCORE_REFRESH_INTERVAL", time.Hour),
		},
	}, nil
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Validate checks that all required configuration values are present and valid.
// It returns an error describing all validation failures, or nil if valid.
func (c *Config) Validate() error {
	var errs []error

	// Server validation
	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT is required"))
	}
	if c.Server.Env != "development" && c.Server.Env != "production" && c.Server.Env != "test" {
		errs = append(errs, fmt.Errorf("SERVER_ENV must be 'development', 'production', or 'test', got '%s'", c.Server.Env))
	}
	if len(c.Server.AllowedOrigins) == 0 {
		errs = append(errs, errors.New("CORS_ALLOWED_ORIGINS must have at least one origin"))
	}

	// Engine validation
	if c.Engine.Alpha < 0 || c.Engine.Beta < 0 || c.Engine.Gamma < 0 {
		errs = append(errs, errors.New("ENGINE_ALPHA, ENGINE_BETA, and ENGINE_GAMMA must be non-negative"))
	}
	if c.Engine.DecayLambda < 0 {
		errs = append(errs, errors.New("ENGINE_DECAY_LAMBDA must be non-negative"))
	}
	if c.Engine.DriftWindow < 1 {
		errs = append(errs, errors.New("ENGINE_DRIFT_WINDOW must be at least 1"))
	}
	if c.Engine.ImputeWindow < 1 {
		errs = append(errs, errors.New("ENGINE_IMPUTE_WINDOW must be at least 1"))
	}

	// Course bonus validation
	if c.Course.BaseBonus < 0 {
		errs = append(errs, errors.New("COURSE_BASE_BONUS must be non-negative"))
	}
	if c.Course.MaxBonus < 0 {
		errs = append(errs, errors.New("COURSE_MAX_BONUS must be non-negative"))
	}
	if c.Course.DecayLambda < 0 {
		errs = append(errs, errors.New("COURSE_DECAY_LAMBDA must be non-negative"))
	}
	if c.Course.DefaultSourceWeight < 0 || c.Course.DefaultTopicWeight < 0 {
		errs = append(errs, errors.New("COURSE_DEFAULT_SOURCE_WEIGHT and COURSE_DEFAULT_TOPIC_WEIGHT must be non-negative"))
	}
	for source, weight := range c.Course.SourceWeights {
		if weight < 0 {
			errs = append(errs, fmt.Errorf("COURSE_SOURCE_WEIGHTS entry '%s' must be non-negative", source))
		}
	}
	for topic, weight := range c.Course.TopicWeights {
		if weight < 0 {
			errs = append(errs, fmt.Errorf("COURSE_TOPIC_WEIGHTS entry '%s' must be non-negative", topic))
		}
	}

	// Jobs validation
	if c.Jobs.RefreshInterval < 0 {
		errs = append(errs, errors.New("SCORE_REFRESH_INTERVAL must be non-negative"))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}

// getWeightTableEnv parses "Key:Weight,Key:Weight" pairs, e.g.
// "IIT:1.0,NPTEL:0.9". Malformed values fall back to the default table.
func getWeightTableEnv(key string, defaultValue map[string]float64) map[string]float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	table := make(map[string]float64)
	for _, pair := range strings.Split(value, ",") {
		name, weight, ok := strings.Cut(pair, ":")
		if !ok {
			return defaultValue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(weight), 64)
		if err != nil {
			return defaultValue
		}
		table[strings.TrimSpace(name)] = f
	}
	return table
}
