// SPDX-License-Identifier: Apache-2.0

package config

import (
	"strings"
	"time"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/open-cas/casmod/pkg/sanity"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "CASMOD"

	ModeLocal   = "local"
	ModeVirtual = "virtual"
	ModeSSH     = "ssh"
	// ModeNative loads and removes modules through syscalls on this host.
	ModeNative = "native"
)

// Config holds the global configuration for the application.
type Config struct {
	Log      logx.LoggingConfig `yaml:"log" json:"log"`
	Executor ExecutorConfig     `yaml:"executor" json:"executor"`
	SSH      SSHConfig          `yaml:"ssh" json:"ssh"`
}

// ExecutorConfig represents the `executor` configuration block.
type ExecutorConfig struct {
	Mode    string        `yaml:"mode" json:"mode"`
	Shell   string        `yaml:"shell" json:"shell"`
	Sudo    bool          `yaml:"sudo" json:"sudo"`
	Timeout time.Duration `yaml:"timeout" json:"timeout"`
}

// SSHConfig represents the `ssh` configuration block used when executor.mode is ssh.
type SSHConfig struct {
	Host           string        `yaml:"host" json:"host"`
	Port           int           `yaml:"port" json:"port"`
	User           string        `yaml:"user" json:"user"`
	Password       string        `yaml:"password" json:"-"`
	KeyFile        string        `yaml:"keyFile" json:"keyFile"`
	KnownHostsFile string        `yaml:"knownHostsFile" json:"knownHostsFile"`
	DialTimeout    time.Duration `yaml:"dialTimeout" json:"dialTimeout"`
}

func (c ExecutorConfig) Validate() error {
	switch c.Mode {
	case ModeLocal:
		if strings.TrimSpace(c.Shell) == "" {
			return errorx.IllegalArgument.New("executor shell must not be empty in %s mode", c.Mode)
		}
	case ModeVirtual, ModeSSH, ModeNative:
	default:
		return errorx.IllegalArgument.New("unsupported executor mode %q, expected one of %s",
			c.Mode, strings.Join([]string{ModeLocal, ModeVirtual, ModeSSH, ModeNative}, ", "))
	}

	if c.Timeout < 0 {
		return errorx.IllegalArgument.New("executor timeout must not be negative: %s", c.Timeout)
	}

	return nil
}

func (c SSHConfig) Validate() error {
	if c.Host == "" {
		return errorx.IllegalArgument.New("ssh host is required in ssh mode")
	}
	if c.Port < 0 || c.Port > 65535 {
		return errorx.IllegalArgument.New("invalid ssh port: %d", c.Port)
	}
	if c.Password == "" && c.KeyFile == "" {
		return errorx.IllegalArgument.New("ssh password or keyFile is required in ssh mode")
	}
	if c.DialTimeout < 0 {
		return errorx.IllegalArgument.New("ssh dialTimeout must not be negative: %s", c.DialTimeout)
	}
	if c.KeyFile != "" {
		if _, err := sanity.SanitizePath(c.KeyFile); err != nil {
			return errorx.Decorate(err, "invalid ssh keyFile")
		}
	}
	if c.KnownHostsFile != "" {
		if _, err := sanity.SanitizePath(c.KnownHostsFile); err != nil {
			return errorx.Decorate(err, "invalid ssh knownHostsFile")
		}
	}
	return nil
}

// Validate validates all configuration fields.
func (c Config) Validate() error {
	if err := c.Executor.Validate(); err != nil {
		return err
	}
	if c.Executor.Mode == ModeSSH {
		if err := c.SSH.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Default returns the configuration used when no file or environment overrides are given.
func Default() Config {
	return Config{
		Log: logx.LoggingConfig{
			Level:          "Info",
			ConsoleLogging: true,
			FileLogging:    false,
		},
		Executor: ExecutorConfig{
			Mode:    ModeLocal,
			Shell:   "bash",
			Sudo:    false,
			Timeout: 60 * time.Second,
		},
		SSH: SSHConfig{
			Port:        22,
			User:        "root",
			DialTimeout: 30 * time.Second,
		},
	}
}

var globalConfig = Default()

// setDefaults registers every key so that environment variables can override
// settings that are absent from the config file.
func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.consoleLogging", c.Log.ConsoleLogging)
	v.SetDefault("log.fileLogging", c.Log.FileLogging)
	v.SetDefault("executor.mode", c.Executor.Mode)
	v.SetDefault("executor.shell", c.Executor.Shell)
	v.SetDefault("executor.sudo", c.Executor.Sudo)
	v.SetDefault("executor.timeout", c.Executor.Timeout)
	v.SetDefault("ssh.host", c.SSH.Host)
	v.SetDefault("ssh.port", c.SSH.Port)
	v.SetDefault("ssh.user", c.SSH.User)
	v.SetDefault("ssh.password", c.SSH.Password)
	v.SetDefault("ssh.keyFile", c.SSH.KeyFile)
	v.SetDefault("ssh.knownHostsFile", c.SSH.KnownHostsFile)
	v.SetDefault("ssh.dialTimeout", c.SSH.DialTimeout)
}

// Initialize loads the configuration from the specified file and the
// environment. Variables are named CASMOD_<SECTION>_<KEY>, for example
// CASMOD_EXECUTOR_MODE or CASMOD_SSH_HOST.
//
// Parameters:
//   - path: The path to the configuration file. Empty means defaults and environment only.
//
// Returns:
//   - An error if the configuration cannot be loaded or is invalid.
func Initialize(path string) error {
	v := viper.New()
	setDefaults(v, Default())
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return NotFoundError.Wrap(err, "failed to read config file: %s", path).
				WithProperty(errorx.PropertyPayload(), path)
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return errorx.IllegalFormat.Wrap(err, "failed to parse configuration").
			WithProperty(errorx.PropertyPayload(), path)
	}

	if err := cfg.Validate(); err != nil {
		return InvalidConfigError.Wrap(err, "invalid configuration").
			WithProperty(errorx.PropertyPayload(), path)
	}

	globalConfig = cfg
	return nil
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}
