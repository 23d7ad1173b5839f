package config

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	FrontendConsole = "console"
	FrontendTUI     = "tui"
)

var (
	ErrUnknownFrontend = errors.New("unknown frontend")
	ErrInvalidWorkers  = errors.New("search workers must be at least 1")
	ErrInvalidMark     = errors.New("invalid mark")
)

type Config struct {
	LogLevel      string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile       string `yaml:"log-file" env:"LOG_FILE" env-default:""`
	Frontend      string `yaml:"frontend" env:"FRONTEND" env-default:"console"`
	ComputerFirst bool   `yaml:"computer-first" env:"COMPUTER_FIRST" env-default:"false"`
	Search        Search `yaml:"search"`
	Marks         Marks  `yaml:"marks"`
}

type Search struct {
	Workers int `yaml:"workers" env:"SEARCH_WORKERS" env-default:"1"`
}

// Marks holds the glyphs used to draw the board. They are display only.
type Marks struct {
	Human    string `yaml:"human" env:"MARK_HUMAN" env-default:"X"`
	Computer string `yaml:"computer" env:"MARK_COMPUTER" env-default:"O"`
	Empty    string `yaml:"empty" env:"MARK_EMPTY" env-default:" "`
}

// MustLoad - load all configurations in config.yml file, falling back to the environment when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Frontend {
	case FrontendConsole, FrontendTUI:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrontend, that.Frontend)
	}

	if that.Search.Workers < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, that.Search.Workers)
	}

	return that.Marks.Validate()
}

func (that *Marks) Validate() error {
	for name, glyph := range map[string]string{
		"human":    that.Human,
		"computer": that.Computer,
		"empty":    that.Empty,
	} {
		if utf8.RuneCountInString(glyph) != 1 {
			return fmt.Errorf("%w: %s mark %q must be a single character", ErrInvalidMark, name, glyph)
		}
	}

	if that.Human == that.Computer || that.Human == that.Empty || that.Computer == that.Empty {
		return fmt.Errorf("%w: marks must be distinct", ErrInvalidMark)
	}

	return nil
}
