// Package config loads service configuration with Viper.
//
// Values come from a config.yml, an optional .env file (godotenv) and the
// process environment. Environment variables map onto nested keys, so
// MERCURE_HUB_URL populates hub_url in the mercure section.
package config
