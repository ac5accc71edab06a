package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"localefinder/internal/domain"
)

// DefaultFile is read from the working directory when no path is given.
const DefaultFile = "localefinder.toml"

const (
	StorageFilesystem = "filesystem"
	StoragePostgres   = "postgres"
)

type Config struct {
	Search             Search            `toml:"search"`
	TranslationMethods []string          `toml:"translation_methods"`
	LangPath           string            `toml:"lang_path"`
	Modules            map[string]string `toml:"modules"`
	Storage            Storage           `toml:"storage"`
	Translate          Translate         `toml:"translate"`
	Notify             Notify            `toml:"notify"`
}

type Search struct {
	Folders       []string `toml:"folders"`
	Exclude       []string `toml:"exclude"`
	FileExtension []string `toml:"file_extension"`
	Files         []string `toml:"files"`
}

type Storage struct {
	Driver      string `toml:"driver"`
	DatabaseURL string `toml:"database_url"`
}

type Translate struct {
	Provider string   `toml:"provider"`
	Tries    int      `toml:"tries"`
	Delay    Duration `toml:"delay"`
}

type Notify struct {
	DiscordWebhookURL string `toml:"discord_webhook_url"`
	Timezone          string `toml:"timezone"`
}

// Duration reads TOML strings such as "500ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Search: Search{
			Folders:       []string{"resources", "app"},
			Exclude:       []string{"vendor", "node_modules"},
			FileExtension: []string{"*.php"},
		},
		TranslationMethods: []string{"__", "trans", "@lang", "Lang::get"},
		LangPath:           "lang",
		Modules:            map[string]string{},
		Storage:            Storage{Driver: StorageFilesystem},
		Translate:          Translate{Provider: "google", Tries: 2, Delay: Duration{time.Second}},
	}
}

// Load builds the configuration: an optional .env file, then the TOML file at
// path (DefaultFile when empty, optional only in that case), then environment
// overrides. The result is validated.
func Load(fsys afero.Fs, path string) (*Config, error) {
	// .env is optional when the variables come from the environment (CI, Docker, ...).
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	data, err := afero.ReadFile(fsys, path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("%w: config: %s: %v", domain.ErrConfiguration, path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("%w: config: %v", domain.ErrConfiguration, err)
	}

	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LOCALEFINDER_LANG_PATH"); v != "" {
		c.LangPath = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Storage.DatabaseURL = v
	}
	if v := os.Getenv("DISCORD_WEBHOOK_URL"); v != "" {
		c.Notify.DiscordWebhookURL = v
	}
}

// validate applies the configuration rules.
func (c *Config) validate() error {
	if strings.TrimSpace(c.LangPath) == "" {
		return fmt.Errorf("%w: config: lang_path is required", domain.ErrConfiguration)
	}

	methods := c.TranslationMethods[:0]
	for _, m := range c.TranslationMethods {
		if m = strings.TrimSpace(m); m != "" {
			methods = append(methods, m)
		}
	}
	if len(methods) == 0 {
		return fmt.Errorf("%w: config: translation_methods needs at least one function name", domain.ErrConfiguration)
	}
	c.TranslationMethods = methods

	if len(c.Search.Folders) == 0 && len(c.Search.Files) == 0 {
		return fmt.Errorf("%w: config: search.folders or search.files is required", domain.ErrConfiguration)
	}

	for vendor, dir := range c.Modules {
		if strings.TrimSpace(vendor) == "" || strings.Contains(vendor, "::") || strings.TrimSpace(dir) == "" {
			return fmt.Errorf("%w: config: invalid module hint %q = %q", domain.ErrConfiguration, vendor, dir)
		}
	}

	switch c.Storage.Driver {
	case "", StorageFilesystem:
		c.Storage.Driver = StorageFilesystem
	case StoragePostgres:
		parsed, err := url.Parse(c.Storage.DatabaseURL)
		if err != nil {
			return fmt.Errorf("%w: config: invalid DATABASE_URL: %v", domain.ErrConfiguration, err)
		}
		if parsed.Scheme == "" || parsed.Host == "" {
			return fmt.Errorf("%w: config: invalid DATABASE_URL (%q): missing scheme or host", domain.ErrConfiguration, c.Storage.DatabaseURL)
		}
	default:
		return fmt.Errorf("%w: config: unknown storage driver %q", domain.ErrConfiguration, c.Storage.Driver)
	}

	if c.Translate.Provider != "google" {
		return fmt.Errorf("%w: config: unknown translate provider %q", domain.ErrConfiguration, c.Translate.Provider)
	}
	if c.Translate.Tries < 1 {
		c.Translate.Tries = 1
	}
	if c.Translate.Delay.Duration < 0 {
		return fmt.Errorf("%w: config: translate.delay must not be negative", domain.ErrConfiguration)
	}

	if c.Notify.DiscordWebhookURL != "" {
		if u, err := url.Parse(c.Notify.DiscordWebhookURL); err != nil || u.Scheme != "https" {
			return fmt.Errorf("%w: config: discord_webhook_url must be an https URL", domain.ErrConfiguration)
		}
	}
	return nil
}
