package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/sdpower/ccreport-go/internal/i18n"
	"github.com/sdpower/ccreport-go/internal/types"
)

const (
	DefaultDays     = 7
	DefaultFormat   = "markdown"
	DefaultLanguage = "auto"
)

var Formats = []string{"markdown", "table", "json"}

// Config holds report settings from the optional config file. Flags set on
// the command line override it.
type Config struct {
	DataPath    string `json:"data_path"`
	StripPrefix string `json:"strip_prefix"`
	Days        int    `json:"days"`
	Project     string `json:"project"`
	Language    string `json:"language"`
	Format      string `json:"format"`
	Timezone    string `json:"timezone"`
	NoColor     bool   `json:"no_color"`
	LogFile     string `json:"log_file"`
}

func Defaults() Config {
	return Config{
		Days:     DefaultDays,
		Format:   DefaultFormat,
		Language: DefaultLanguage,
	}
}

// DefaultPath is ~/.config/ccreport/config.json.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "ccreport", "config.json")
}

// Load reads path over the defaults. A missing or malformed file yields the
// defaults; configuration is never fatal at this stage.
func Load(path string) Config {
	if path == "" {
		return Defaults()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Defaults()
	}

	cfg := Defaults()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Defaults()
	}
	return cfg
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if c.Days <= 0 {
		return types.ValidationError{Field: "days", Message: "must be a positive number of days"}
	}
	if !validFormat(c.Format) {
		return types.ValidationError{Field: "format", Message: "must be one of " + strings.Join(Formats, ", ")}
	}
	if c.Language != DefaultLanguage && c.Language != "" {
		if _, err := i18n.Parse(c.Language); err != nil {
			return types.ValidationError{Field: "language", Message: err.Error()}
		}
	}
	return nil
}

func validFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}

// ResolveLanguage turns "auto" into a concrete language using the locale
// environment variables. getenv is os.Getenv outside tests.
func ResolveLanguage(setting string, getenv func(string) string) i18n.Language {
	if setting != DefaultLanguage && setting != "" {
		if lang, err := i18n.Parse(setting); err == nil {
			return lang
		}
		return i18n.English
	}
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if v := getenv(key); v != "" {
			if lang, err := i18n.Parse(v); err == nil {
				return lang
			}
			return i18n.English
		}
	}
	return i18n.English
}

// DefaultDataPath mirrors where Claude Code keeps its project logs.
func DefaultDataPath(getenv func(string) string) string {
	if dir := getenv("CLAUDE_CONFIG_DIR"); dir != "" {
		projects := filepath.Join(dir, "projects")
		if _, err := os.Stat(projects); err == nil {
			return projects
		}
		return dir
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	claudePath := filepath.Join(homeDir, ".claude", "projects")
	if _, err := os.Stat(claudePath); err == nil {
		return claudePath
	}

	configPath := filepath.Join(homeDir, ".config", "claude", "projects")
	if _, err := os.Stat(configPath); err == nil {
		return configPath
	}

	return claudePath
}

// EncodeProjectPrefix returns the directory-name prefix Claude Code gives to
// projects under dir: "/Users/alice" becomes "-Users-alice-".
func EncodeProjectPrefix(dir string) string {
	if dir == "" {
		return ""
	}
	clean := filepath.ToSlash(filepath.Clean(dir))
	clean = strings.TrimSuffix(clean, "/")
	encoded := strings.NewReplacer("/", "-", ".", "-", "_", "-", ":", "-").Replace(clean)
	return encoded + "-"
}

// DefaultProjectPrefix is the encoded home directory.
func DefaultProjectPrefix() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return EncodeProjectPrefix(home)
}
