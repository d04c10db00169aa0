// Package config provides configuration management for jira-release-sync.
//
// Configuration is a flat set of key/value inputs supplied by the calling
// environment. Sources are merged by viper in precedence order: command
// flags, then environment variables (both JRS_* and CI-style INPUT_*
// aliases), then the stored credentials file for the connection settings.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/releasekit/jira-release-sync/internal/util/dates"
)

// Supported operations.
const (
	OperationCreateOrUpdate = "create_or_update"
	OperationDelete         = "delete"
)

// Configuration keys. Environment aliases are derived from these:
// "release_name" reads JRS_RELEASE_NAME and INPUT_RELEASE_NAME.
const (
	KeyEmail              = "email"
	KeyAPIToken           = "api_token"
	KeySubdomain          = "subdomain"
	KeyProject            = "jira_project"
	KeyReleaseName        = "release_name"
	KeyOperation          = "operation"
	KeyTickets            = "tickets"
	KeyDryRun             = "dry_run"
	KeyReleaseDescription = "release_description"
	KeyReleaseReleased    = "release_released"
	KeyReleaseDate        = "release_release_date"
	KeyReleaseArchived    = "release_archived"
)

// Keys lists every configuration key, in documentation order.
var Keys = []string{
	KeyEmail,
	KeyAPIToken,
	KeySubdomain,
	KeyProject,
	KeyReleaseName,
	KeyOperation,
	KeyTickets,
	KeyDryRun,
	KeyReleaseDescription,
	KeyReleaseReleased,
	KeyReleaseDate,
	KeyReleaseArchived,
}

// Config holds one run's fully resolved inputs.
type Config struct {
	// Connection settings
	Email     string
	APIToken  string
	Subdomain string

	// Target
	Project     string
	ReleaseName string

	// Operation dispatch
	Operation string
	Tickets   string
	DryRun    bool

	// Desired version state
	ReleaseDescription string
	ReleaseReleased    bool
	ReleaseDate        string
	ReleaseArchived    bool
}

// ValidationError reports a malformed or missing configuration field.
// It is raised before any tracker interaction.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Msg)
}

// BindEnv registers the JRS_* and INPUT_* environment aliases for every
// configuration key on v. INPUT_* matches the convention CI runners use to
// pass workflow inputs to a step.
func BindEnv(v *viper.Viper) {
	for _, key := range Keys {
		upper := strings.ToUpper(key)
		// Errors only occur with zero arguments.
		_ = v.BindEnv(key, "JRS_"+upper, "INPUT_"+upper)
	}
}

// BindFlags binds the run command's flags to their configuration keys.
// Flag names use dashes; keys use underscores.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	for _, key := range Keys {
		name := strings.ReplaceAll(key, "_", "-")
		if f := flags.Lookup(name); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("failed to bind flag %s: %w", name, err)
			}
		}
	}
	return nil
}

// Load resolves a Config from v, falling back to the stored credentials
// file for connection settings left unset by flags and environment.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Email:              strings.TrimSpace(v.GetString(KeyEmail)),
		APIToken:           strings.TrimSpace(v.GetString(KeyAPIToken)),
		Subdomain:          strings.TrimSpace(v.GetString(KeySubdomain)),
		Project:            strings.TrimSpace(v.GetString(KeyProject)),
		ReleaseName:        strings.TrimSpace(v.GetString(KeyReleaseName)),
		Operation:          strings.TrimSpace(v.GetString(KeyOperation)),
		Tickets:            v.GetString(KeyTickets),
		DryRun:             v.GetBool(KeyDryRun),
		ReleaseDescription: v.GetString(KeyReleaseDescription),
		ReleaseReleased:    v.GetBool(KeyReleaseReleased),
		ReleaseDate:        strings.TrimSpace(v.GetString(KeyReleaseDate)),
		ReleaseArchived:    v.GetBool(KeyReleaseArchived),
	}

	if cfg.Email == "" || cfg.APIToken == "" || cfg.Subdomain == "" {
		stored, err := LoadCredentials("")
		if err != nil {
			return nil, err
		}
		if cfg.Email == "" {
			cfg.Email = stored.Email
		}
		if cfg.APIToken == "" {
			cfg.APIToken = stored.APIToken
		}
		if cfg.Subdomain == "" {
			cfg.Subdomain = stored.Subdomain
		}
	}

	return cfg, nil
}

// Validate checks the configuration against the input schema. It returns a
// *ValidationError naming the first offending field, or nil. Nothing talks
// to Jira before this passes.
func (cfg *Config) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{KeyEmail, cfg.Email},
		{KeyAPIToken, cfg.APIToken},
		{KeySubdomain, cfg.Subdomain},
		{KeyProject, cfg.Project},
		{KeyReleaseName, cfg.ReleaseName},
		{KeyOperation, cfg.Operation},
	}
	for _, r := range required {
		if r.value == "" {
			return &ValidationError{Field: r.field, Msg: "required"}
		}
	}

	switch cfg.Operation {
	case OperationCreateOrUpdate, OperationDelete:
	default:
		return &ValidationError{
			Field: KeyOperation,
			Msg:   fmt.Sprintf("must be %q or %q, got %q", OperationCreateOrUpdate, OperationDelete, cfg.Operation),
		}
	}

	if cfg.ReleaseDate != "" {
		if _, err := dates.Parse(cfg.ReleaseDate); err != nil {
			return &ValidationError{Field: KeyReleaseDate, Msg: err.Error()}
		}
	}

	return nil
}

// Redacted returns a copy safe for logging, with the API token masked.
func (cfg *Config) Redacted() Config {
	out := *cfg
	if out.APIToken != "" {
		out.APIToken = "****"
	}
	return out
}
