package client

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/mdouchement/cmsadmin/pkg/libcms"
	"github.com/pkg/errors"
)

// EnvPrefix is the prefix of the environment variables overriding the settings.
const EnvPrefix = "CMSADMIN_"

// Settings holds the client's configuration.
type Settings struct {
	Endpoint        string
	Timeout         time.Duration
	LogFile         string
	CredentialsFile string
}

// LoadSettings loads the defaults, the given YAML file if any and then the CMSADMIN_* environment variables.
// A `.env` file in the current directory is loaded into the environment first.
func LoadSettings(filename string) (Settings, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Settings{}, errors.Wrap(err, "could not load .env")
	}

	konf := koanf.New(".")

	err := konf.Load(confmap.Provider(map[string]any{
		"endpoint":         "http://localhost:7777/api/",
		"timeout":          libcms.DefaultTimeout.String(),
		"log_file":         "cmsadmin.log",
		"credentials_file": ".cmsadmin",
	}, "."), nil)
	if err != nil {
		return Settings{}, errors.Wrap(err, "could not load defaults")
	}

	if filename != "" {
		if err := konf.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return Settings{}, errors.Wrap(err, "could not load configuration file")
		}
	}

	err = konf.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return Settings{}, errors.Wrap(err, "could not load environment")
	}

	settings := Settings{
		Endpoint:        konf.String("endpoint"),
		Timeout:         konf.Duration("timeout"),
		LogFile:         konf.String("log_file"),
		CredentialsFile: konf.String("credentials_file"),
	}
	if settings.Timeout <= 0 {
		return settings, errors.Errorf("invalid timeout: %s", konf.String("timeout"))
	}
	return settings, nil
}
