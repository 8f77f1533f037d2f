package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultAPIBaseURL = "https://extra-brooke-yeremiadio-46b2183e.koyeb.app/api"

type Config struct {
	APIBaseURL    string
	PageSize      int
	SessionDBPath string
}

func DefaultConfig() Config {
	return Config{
		APIBaseURL:    defaultAPIBaseURL,
		PageSize:      defaultPageSize,
		SessionDBPath: defaultSessionDBPath(),
	}
}

func LoadConfig() (Config, error) {
	path := configPath()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg := DefaultConfig()
			if err := SaveConfig(cfg); err != nil {
				return Config{}, err
			}
			return applyEnv(cfg), nil
		}
		return Config{}, err
	}

	cfg := DefaultConfig()
	if err := parseConfig(string(data), &cfg); err != nil {
		return Config{}, err
	}
	return applyEnv(cfg), nil
}

func applyEnv(cfg Config) Config {
	if base := strings.TrimSpace(os.Getenv("ROAM_API_BASE_URL")); base != "" {
		cfg.APIBaseURL = base
	}
	return cfg
}

func SaveConfig(cfg Config) error {
	path := configPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	content := renderConfig(cfg)
	return os.WriteFile(path, []byte(content), 0o600)
}

func configPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(configDir, "roam", "config.toml")
}

func defaultSessionDBPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "session.db"
		}
		dataDir = filepath.Join(home, ".local", "share")
	}
	path := filepath.Join(dataDir, "roam")
	_ = os.MkdirAll(path, 0o755)
	return filepath.Join(path, "session.db")
}

func parseConfig(raw string, cfg *Config) error {
	scanner := bufio.NewScanner(strings.NewReader(raw))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			return fmt.Errorf("invalid config line: %q", line)
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		switch key {
		case "api_base_url":
			cfg.APIBaseURL = trimQuotes(value)
		case "session_db_path":
			cfg.SessionDBPath = trimQuotes(value)
		case "page_size":
			parsed, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid page_size: %w", err)
			}
			cfg.PageSize = parsed
		default:
			// ignore unknown keys for forward compatibility
		}
	}
	return scanner.Err()
}

func trimQuotes(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	unquoted, err := strconv.Unquote(value)
	if err == nil {
		return unquoted
	}
	return strings.Trim(value, "\"")
}

func renderConfig(cfg Config) string {
	lines := []string{
		"api_base_url = \"" + cfg.APIBaseURL + "\"",
		"page_size = " + strconv.Itoa(cfg.PageSize),
		"session_db_path = \"" + cfg.SessionDBPath + "\"",
	}
	return strings.Join(lines, "\n") + "\n"
}
