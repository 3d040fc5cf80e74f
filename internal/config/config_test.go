package config

import (
	"strings"
	"testing"
)

func validBaseConfig() *Config {
	cfg, _ := Load()
	return cfg
}

func TestConfig_Load_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Engine.Alpha != 0.5 || cfg.Engine.Beta != 0.3 || cfg.Engine.Gamma != 0.2 {
		t.Errorf("unexpected default coefficients: %+v", cfg.Engine)
	}
	if cfg.Engine.DriftWindow != 5 {
		t.Errorf("expected drift window 5, got %d", cfg.Engine.DriftWindow)
	}
	if cfg.Engine.ImputeWindow != 3 {
		t.Errorf("expected impute window 3, got %d", cfg.Engine.ImputeWindow)
	}
	if cfg.Course.BaseBonus != 50 || cfg.Course.MaxBonus != 200 {
		t.Errorf("unexpected default bonus config: %+v", cfg.Course)
	}
	if cfg.Course.SourceWeights["IIT"] != 1.0 {
		t.Errorf("expected IIT source weight 1.0, got %f", cfg.Course.SourceWeights["IIT"])
	}
	if cfg.Course.TopicWeights["Web Dev"] != 0.8 {
		t.Errorf("expected Web Dev topic weight 0.8, got %f", cfg.Course.TopicWeights["Web Dev"])
	}
}

func TestConfig_Validate_ValidConfig(t *testing.T) {
	cfg := validBaseConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got error: %v", err)
	}
}

func TestConfig_Validate_InvalidServerEnv(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Env = "invalid"

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for invalid SERVER_ENV")
	}
	if !strings.Contains(err.Error(), "SERVER_ENV") {
		t.Errorf("expected error to mention SERVER_ENV, got: %v", err)
	}
}

func TestConfig_Validate_MissingPort(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Server.Port = ""

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for missing SERVER_PORT")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("expected error to mention SERVER_PORT, got: %v", err)
	}
}

func TestConfig_Validate_NegativeCoefficient(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Engine.Gamma = -0.2

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for negative ENGINE_GAMMA")
	}
	if !strings.Contains(err.Error(), "ENGINE_GAMMA") {
		t.Errorf("expected error to mention ENGINE_GAMMA, got: %v", err)
	}
}

func TestConfig_Validate_ZeroDriftWindow(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Engine.DriftWindow = 0

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for zero ENGINE_DRIFT_WINDOW")
	}
	if !strings.Contains(err.Error(), "ENGINE_DRIFT_WINDOW") {
		t.Errorf("expected error to mention ENGINE_DRIFT_WINDOW, got: %v", err)
	}
}

func TestConfig_Validate_NegativeSourceWeight(t *testing.T) {
	cfg := validBaseConfig()
	cfg.Course.SourceWeights = map[string]float64{"IIT": -1}

	err := cfg.Validate()
	if err == nil {
		t.Error("expected error for negative source weight")
	}
	if !strings.Contains(err.Error(), "COURSE_SOURCE_WEIGHTS") {
		t.Errorf("expected error to mention COURSE_SOURCE_WEIGHTS, got: %v", err)
	}
}

func TestGetWeightTableEnv_ParsesPairs(t *testing.T) {
	t.Setenv("TEST_WEIGHT_TABLE", "IIT:1.0,NPTEL:0.9")

	table := getWeightTableEnv("TEST_WEIGHT_TABLE", nil)
	if table["IIT"] != 1.0 || table["NPTEL"] != 0.9 {
		t.Errorf("unexpected table: %v", table)
	}
}

func TestGetWeightTableEnv_MalformedFallsBack(t *testing.T) {
	t.Setenv("TEST_WEIGHT_TABLE", "garbage")

	fallback := map[string]float64{"X": 1}
	table := getWeightTableEnv("TEST_WEIGHT_TABLE", fallback)
	if table["X"] != 1 {
		t.Errorf("expected fallback table, got %v", table)
	}
}
