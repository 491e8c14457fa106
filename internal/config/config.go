// Package config resolves the tool configuration: defaults, an optional TOML
// file, then command-line flags, validated before any socket is touched.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Mode selects which pump the tool runs.
type Mode string

const (
	ModeMonitor Mode = "monitor"
	ModeSend    Mode = "send"
)

// Output formats for the monitor's record stream.
const (
	OutputPretty = "pretty"
	OutputJSON   = "json"
	OutputYAML   = "yaml"
)

type Config struct {
	Mode    Mode   `toml:"mode"`
	Address string `toml:"address"` // listen address for monitor mode
	Port    int    `toml:"port"`    // listen port for monitor mode
	Target  string `toml:"target"`  // host:port destination for send mode
	LogFile string `toml:"log_file"`
	Output  string `toml:"output"`
	Verbose bool   `toml:"verbose"`
}

// Default returns the configuration used when no file and no flags are given:
// monitor everything arriving on 0.0.0.0:9000, pretty-print to the console.
func Default() Config {
	return Config{
		Mode:    ModeMonitor,
		Address: "0.0.0.0",
		Port:    9000,
		Target:  "127.0.0.1:9000",
		Output:  OutputPretty,
	}
}

// Load reads path as TOML over the defaults. A missing file with an empty
// path is not an error; a named file that can't be read or parsed is.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return cfg, nil
}

// Validate checks everything the pumps assume has already been checked.
func (c Config) Validate() error {
	switch c.Mode {
	case ModeMonitor, ModeSend:
	default:
		return fmt.Errorf("invalid mode %q (monitor or send)", c.Mode)
	}

	switch c.Output {
	case OutputPretty, OutputJSON, OutputYAML:
	default:
		return fmt.Errorf("invalid output format %q (pretty, json or yaml)", c.Output)
	}

	if c.Mode == ModeMonitor {
		if c.Port < 1 || c.Port > 65535 {
			return fmt.Errorf("invalid port %d (1-65535)", c.Port)
		}
		if c.Address != "" && net.ParseIP(c.Address) == nil {
			return fmt.Errorf("invalid listen address %q", c.Address)
		}
	}

	if c.Mode == ModeSend {
		if _, _, err := c.SplitTarget(); err != nil {
			return err
		}
	}

	return nil
}

// SplitTarget resolves Target into the host and port handed to the send
// pump.
func (c Config) SplitTarget() (string, int, error) {
	host, portStr, err := net.SplitHostPort(c.Target)
	if err != nil {
		return "", 0, fmt.Errorf("invalid target %q: %w", c.Target, err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port < 1 || port > 65535 {
		return "", 0, fmt.Errorf("invalid target port %q (1-65535)", portStr)
	}
	if host == "" {
		return "", 0, fmt.Errorf("invalid target %q: missing host", c.Target)
	}
	return host, port, nil
}
