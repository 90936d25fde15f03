// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use and uses the caarlos0/env
// library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/beacon/core/config"
//
//	var settings broadcast.Settings
//
//	// Load with error handling
//	if err := config.Load(&settings); err != nil {
//		log.Fatal(err)
//	}
//
//	// Or panic on failure (useful for startup)
//	config.MustLoad(&settings)
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var s1 broadcast.Settings
//	config.Load(&s1) // Loads from environment
//
//	var s2 broadcast.Settings
//	config.Load(&s2) // Returns cached value, s1 == s2
//
// Different types are cached independently. Call Reset to force a reload.
package config
