// Package config loads application configuration.
//
// It uses Viper to read a YAML file and godotenv to load a .env file, then
// overlays environment variables carrying the application prefix:
//
//	var cfg MyConfig
//	err := config.LoadConfig("dpsession", &cfg)
//
// DPSESSION_SESSION_MAX_CONCURRENT=8 overrides session.max_concurrent.
package config
