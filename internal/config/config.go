// Package config loads qsim settings from defaults, an optional config file,
// QSIM_* environment variables and command-line flags, in increasing order
// of precedence.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"qstatesim/internal/angle"
	"qstatesim/internal/protocols"
	"qstatesim/internal/report"
	"qstatesim/quantum"
)

// EnvPrefix prefixes every environment variable, e.g. QSIM_PROTOCOL.
const EnvPrefix = "QSIM"

// MaxQubits bounds ghz and qft registers.
const MaxQubits = 10

// Config is the validated run configuration.
type Config struct {
	Protocol string `mapstructure:"protocol"`
	Variant  string `mapstructure:"variant"`
	Qubits   int    `mapstructure:"qubits"`
	Input    int    `mapstructure:"input"`
	Theta    string `mapstructure:"theta"`
	Dense    bool   `mapstructure:"dense"`
	Format   string `mapstructure:"format"`
	TUI      bool   `mapstructure:"tui"`
	LogLevel string `mapstructure:"log-level"`

	theta   float64
	variant protocols.Variant
	level   log.Level
}

// NewFlagSet declares every setting as a flag.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("config", "c", "", "config file (yaml, toml or json)")
	fs.StringP("protocol", "p", protocols.NameBell, "protocol: "+strings.Join(protocols.Names, "|"))
	fs.String("variant", string(protocols.PhiPlus), "bell variant: phi+|phi-|psi+|psi-")
	fs.IntP("qubits", "n", 3, "register size for ghz and qft")
	fs.Int("input", 1, "qft input basis index, qubit 0 most significant")
	fs.String("theta", "2*pi/3", "teleport input angle, psi = cos(θ/2)|0> + sin(θ/2)|1>")
	fs.Bool("dense", false, "apply single-qubit gates through the full Kronecker-expanded operator")
	fs.StringP("format", "f", "text", "output format: "+strings.Join(report.Formats(), "|"))
	fs.Bool("tui", false, "open the interactive viewer")
	fs.String("log-level", "warn", "log level: debug|info|warn|error")
	return fs
}

// Load parses args and layers them over the environment, the config file
// named by --config and the defaults.
func Load(args []string) (*Config, error) {
	fs := NewFlagSet("qsim")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return FromFlags(fs)
}

// FromFlags builds a Config from an already parsed flag set.
func FromFlags(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every field and caches the parsed values.
func (c *Config) Validate() error {
	var errs []error

	c.Protocol = strings.ToLower(c.Protocol)
	if !slices.Contains(protocols.Names, c.Protocol) {
		errs = append(errs, fmt.Errorf("protocol %q: want one of %s", c.Protocol, strings.Join(protocols.Names, ", ")))
	}

	variant, err := protocols.ParseVariant(c.Variant)
	if err != nil {
		errs = append(errs, err)
	}
	c.variant = variant

	if c.Protocol == protocols.NameGHZ || c.Protocol == protocols.NameQFT {
		lo := 1
		if c.Protocol == protocols.NameGHZ {
			lo = 2
		}
		if c.Qubits < lo || c.Qubits > MaxQubits {
			errs = append(errs, fmt.Errorf("qubits %d: want %d to %d", c.Qubits, lo, MaxQubits))
		} else if c.Protocol == protocols.NameQFT && (c.Input < 0 || c.Input >= quantum.Dimension(c.Qubits)) {
			errs = append(errs, fmt.Errorf("input %d: want 0 to %d", c.Input, quantum.Dimension(c.Qubits)-1))
		}
	}

	theta, err := angle.Parse(c.Theta)
	if err != nil {
		errs = append(errs, fmt.Errorf("theta: %w", err))
	}
	c.theta = theta

	if !c.TUI {
		if _, ok := report.Writers[c.Format]; !ok {
			errs = append(errs, fmt.Errorf("format %q: want one of %s", c.Format, strings.Join(report.Formats(), ", ")))
		}
	}

	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		errs = append(errs, fmt.Errorf("log-level: %w", err))
	}
	c.level = level

	return errors.Join(errs...)
}

// ThetaValue is the parsed teleport angle in radians.
func (c *Config) ThetaValue() float64 { return c.theta }

// Level is the parsed log level.
func (c *Config) Level() log.Level { return c.level }

// Request converts the configuration into a protocol request.
func (c *Config) Request() protocols.Request {
	return protocols.Request{
		Protocol: c.Protocol,
		Variant:  c.variant,
		Qubits:   c.Qubits,
		Input:    c.Input,
		Theta:    c.theta,
	}
}
