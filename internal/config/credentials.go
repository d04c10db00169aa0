package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/ini.v1"
)

// Credentials are the connection settings that may be stored on disk so CI
// inputs only need to carry the release parameters.
//
// File location:
//   - Windows: %USERPROFILE%\.config\jira-release-sync\config
//   - Unix: ~/.config/jira-release-sync/config
//
// INI format:
//
//	[jira]
//	email = ci-bot@example.com
//	api_token = <token>
//	subdomain = example
type Credentials struct {
	Email     string `ini:"email"`
	APIToken  string `ini:"api_token"`
	Subdomain string `ini:"subdomain"`
}

// DefaultCredentialsPath returns the default path for the credentials file.
func DefaultCredentialsPath() (string, error) {
	var configDir string

	if runtime.GOOS == "windows" {
		userProfile := os.Getenv("USERPROFILE")
		if userProfile == "" {
			return "", errors.New("USERPROFILE environment variable not set")
		}
		configDir = filepath.Join(userProfile, ".config", "jira-release-sync")
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, ".config", "jira-release-sync")
	}

	return filepath.Join(configDir, "config"), nil
}

// LoadCredentials loads stored credentials from an INI file. A missing file
// is not an error; it yields empty credentials so environment-only setups
// (the normal CI case) work without any file on disk.
func LoadCredentials(path string) (*Credentials, error) {
	creds := &Credentials{}

	if path == "" {
		var err error
		path, err = DefaultCredentialsPath()
		if err != nil {
			return creds, nil
		}
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return creds, nil
	}

	iniFile, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials file: %w", err)
	}

	section := iniFile.Section("jira")
	creds.Email = section.Key("email").String()
	creds.APIToken = section.Key("api_token").String()
	creds.Subdomain = section.Key("subdomain").String()

	return creds, nil
}

// SaveCredentials writes credentials to an INI file with restrictive
// permissions, creating parent directories as needed. The write goes through
// a temporary file and an atomic rename.
func SaveCredentials(creds *Credentials, path string) error {
	if path == "" {
		var err error
		path, err = DefaultCredentialsPath()
		if err != nil {
			return fmt.Errorf("failed to determine credentials path: %w", err)
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	iniFile := ini.Empty()
	section, err := iniFile.NewSection("jira")
	if err != nil {
		return fmt.Errorf("failed to create jira section: %w", err)
	}
	section.Key("email").SetValue(creds.Email)
	section.Key("api_token").SetValue(creds.APIToken)
	section.Key("subdomain").SetValue(creds.Subdomain)

	tmpPath := path + ".tmp"
	if err := iniFile.SaveTo(tmpPath); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}

	// The API token is sensitive; user read/write only.
	if runtime.GOOS != "windows" {
		if err := os.Chmod(tmpPath, 0600); err != nil {
			os.Remove(tmpPath)
			return fmt.Errorf("failed to set credentials permissions: %w", err)
		}
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}
