package datawarehouse

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/proligent-labs/proligent-go/internal/platform/env"
)

// DefaultDestinationDir is the Proligent Integration Service acquisition
// folder, where documents are picked up for ingestion.
const DefaultDestinationDir = `C:\Proligent\IntegrationService\Acquisition`

// Config holds the settings consulted when documents are built and written.
type Config struct {
	// DestinationDir receives documents saved without an explicit path.
	DestinationDir string `yaml:"destination_dir"`
	// Timezone is an IANA zone name applied to timestamps that carry no zone.
	// Empty means the host's local zone.
	Timezone string `yaml:"timezone"`
	// SchemaPath points at the Datawarehouse XSD used by validators.
	SchemaPath string `yaml:"schema_path"`
}

func DefaultConfig() Config {
	return Config{DestinationDir: DefaultDestinationDir}
}

// ConfigFromEnv overlays PROLIGENT_DESTINATION_DIR, PROLIGENT_TIMEZONE, and
// PROLIGENT_SCHEMA_PATH on the defaults.
func ConfigFromEnv() (Config, error) {
	def := DefaultConfig()
	cfg := Config{
		DestinationDir: env.NonEmpty("PROLIGENT_DESTINATION_DIR", def.DestinationDir),
		Timezone:       strings.TrimSpace(env.String("PROLIGENT_TIMEZONE", def.Timezone)),
		SchemaPath:     env.NonEmpty("PROLIGENT_SCHEMA_PATH", def.SchemaPath),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfigFile reads a YAML config file. Keys left out keep their defaults;
// unknown keys are rejected.
func LoadConfigFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	cfg := DefaultConfig()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode config %s: %w", path, err)
	}
	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DestinationDir) == "" {
		return errors.New("destination dir is required")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone. Unknown names fail with ErrFormat.
func (c Config) Location() (*time.Location, error) {
	name := strings.TrimSpace(c.Timezone)
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: timezone %q: %w", ErrFormat, name, err)
	}
	return loc, nil
}

// defaultConfig is process-wide. It has no synchronization: set it once at
// startup, before any goroutine builds documents.
var defaultConfig = DefaultConfig()

// SetDefaultConfig replaces the process-wide configuration used by warehouses
// created without WithConfig. Call it during startup only.
func SetDefaultConfig(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	defaultConfig = cfg
	return nil
}

func CurrentConfig() Config {
	return defaultConfig
}
