/*
Package config handles command-line flags and environment configuration.

# Configuration

ParseFlags returns a Config with all settings:

	cfg, err := config.ParseFlags(os.Args[1:])

# CLI Flags

	-api       Questionnaire API base URL
	-token     Bearer token for the API
	-data      Directory of questionnaire files (used when -api is empty)
	-id        Questionnaire to load at startup
	-watch     Reload the open questionnaire when its file changes
	-registry  YAML file replacing the built-in component table

# Environment Variables

Flags fall back to environment variables:

	QUESTIONNAIRE_API      → -api
	QUESTIONNAIRE_TOKEN    → -token
	QUESTIONNAIRE_DATA     → -data
	QUESTIONNAIRE_ID       → -id
	QUESTIONNAIRE_WATCH    → -watch
	QUESTIONNAIRE_REGISTRY → -registry

CLI flags take precedence over environment variables. LoadEnvFile reads a
.env file into the environment first, without overriding variables that are
already set.

# Validation

ParseFlags returns an error when -watch is combined with -api, since only
the directory source has files to watch.
*/
package config
