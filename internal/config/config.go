package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type ConfigReadeck struct {
	Host  string `koanf:"host" validate:"required,url"`
	Token string `koanf:"token" validate:"required"`
}

type Config struct {
	Readeck        ConfigReadeck `koanf:"readeck"`
	TimeoutSeconds int           `koanf:"timeout_seconds" validate:"min=1"`
	LogLevel       string        `koanf:"log_level" validate:"oneof=error warn info debug"`
}

func (c *Config) Validate() error {
	validate := validator.New()
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return fmt.Errorf("configuration validation failed: %v", validationErrors)
	}

	return err
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")
	parser := yaml.Parser()

	if err := setDefaultValues(k); err != nil {
		return nil, err
	}

	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaultValues(k *koanf.Koanf) error {
	return k.Load(confmap.Provider(map[string]any{
		"timeout_seconds": 30,
		"log_level":       "info",
	}, "."), nil)
}
