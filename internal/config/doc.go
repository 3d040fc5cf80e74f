// Package config provides application configuration loaded from environment
// variables with sensible defaults.
//
// Configuration is split into logical groups: server settings, engine
// tunables (weight coefficients, decay rates, history windows), course
// bonus settings (base/max bonus, decay, credibility tables), and
// background job settings.
//
// The engine windows and coefficients mirror the tuning parameters of the
// rating fusion algorithm and are deliberately configurable rather than
// hard-coded at their use sites.
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := cfg.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package config
