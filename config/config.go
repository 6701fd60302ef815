// Package config carries the endpoint parameters shared by the demo
// server and every client in the suite: host, port and the application
// name the demo app is mounted under.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

const (
	envHost = "HTTPKIT_HOST"
	envPort = "HTTPKIT_PORT"
	envApp  = "HTTPKIT_APP"
)

type Config struct {
	Host string `ini:"host"`
	Port int    `ini:"port"`
	App  string `ini:"app"`
}

func Default() Config {
	return Config{
		Host: "localhost",
		Port: 8080,
		App:  "helloworld",
	}
}

// Load reads cfg from an ini file and applies env overrides on top.
// A missing file is not an error; defaults plus env are used instead.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			file, err := ini.Load(path)
			if err != nil {
				return cfg, errors.Wrapf(err, "failed to load config file %s", path)
			}
			if err := file.MapTo(&cfg); err != nil {
				return cfg, errors.Wrap(err, "failed to map config file")
			}
		}
	}
	overrideString(&cfg.Host, envHost)
	overrideInt(&cfg.Port, envPort)
	overrideString(&cfg.App, envApp)
	return cfg, nil
}

// BaseURL composes scheme://host:port/app.
func (c Config) BaseURL() string {
	return fmt.Sprintf("http://%s:%d/%s", c.Host, c.Port, c.App)
}

// PageURL composes the full address of a single page under the app.
func (c Config) PageURL(page string) string {
	return c.BaseURL() + "/" + page
}

func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func overrideString(target *string, envName string) {
	if v := os.Getenv(envName); v != "" {
		*target = v
	}
}

func overrideInt(target *int, envName string) {
	if v := os.Getenv(envName); v != "" {
		if intValue, err := strconv.Atoi(v); err == nil {
			*target = intValue
		}
	}
}
