/*
Package config provides type-safe extraction of runtime settings from
map[string]any structures.

# Overview

config wraps a map[string]any and provides typed accessor methods that
handle missing keys and type mismatches gracefully by returning default
values. Application settings typically arrive as parsed YAML or JSON, and
the accessors remove the verbose type assertions that reading such maps
otherwise requires.

# Basic Usage

Create a Config from any map and extract values with defaults:

	cfg := config.New(map[string]any{
	    "default_page":   "activities",
	    "refresh_window": "5m",
	    "debug":          true,
	})

	page := cfg.String("default_page", "overview")       // "activities"
	window := cfg.Duration("refresh_window", time.Minute) // 5m
	debug := cfg.Bool("debug", false)                     // true
	missing := cfg.Int("history_capacity", 100)           // 100

# Sections

Nested maps group related settings. Section returns a sub-Config so each
component reads only its own block:

	routerCfg := cfg.Section("router")
	page := routerCfg.String("default_page", "overview")

Section of a missing or non-map key returns an empty Config, so every
accessor falls back to its default.

# Type Coercion

Duration handles multiple input types:
  - string: parsed with time.ParseDuration ("30s", "1h30m")
  - int/float64: interpreted as seconds
  - time.Duration: used directly

Numeric types handle reasonable conversions:
  - int from float64 (only without a fractional part)
  - float64 from int

# File Loading

Load settings from YAML or JSON files:

	cfg, err := config.FromFile("appkit.yaml")
	if err != nil {
	    log.Fatal(err)
	}

# Thread Safety

Config is safe for concurrent read access. The underlying map is not
modified after creation.
*/
package config
