package zread

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rasky/toml"
)

// Config is the configuration of the zread command, parsed from TOML:
//
//	[reader]
//	buffersize = "128KiB"
//	disable = ["bzip2"]
//
//	[output]
//	stats = true
type Config struct {
	Reader ConfigReader
	Output ConfigOutput
}

// ConfigReader configures the Readers created by the command.
type ConfigReader struct {
	BufferSize SizeBytes // size of the chunks read from the sources
	Disable    []string  // formats that mustn't be decoded
}

// ConfigOutput configures what the command prints.
type ConfigOutput struct {
	Stats bool // log stats after each file
}

// String returns a string representation of the exported fields of c.
func (c *Config) String() string {
	return fmt.Sprintf("Reader:{BufferSize:%s, Disable:[%s]} Output:{Stats:%t}",
		c.Reader.BufferSize, strings.Join(c.Reader.Disable, ","), c.Output.Stats)
}

func (c *Config) fillDefaults() {
	if c.Reader.BufferSize == 0 {
		c.Reader.BufferSize = DefaultBufferSize
	}
}

// ReaderConfig returns the ReaderConfig described by c.
func (c *Config) ReaderConfig() (ReaderConfig, error) {
	var disabled []Format
	for _, name := range c.Reader.Disable {
		f, err := ParseFormat(name)
		if err != nil {
			return ReaderConfig{}, err
		}
		if f == FormatNone {
			return ReaderConfig{}, fmt.Errorf("zread: format %q can't be disabled", name)
		}
		disabled = append(disabled, f)
	}

	return ReaderConfig{
		Capabilities: Available().Without(disabled...),
		BufferSize:   c.Reader.BufferSize.Int(),
	}, nil
}

// replaceEnvVars expands ${VAR} and $VAR in the content of f using mapper.
func replaceEnvVars(f io.Reader, mapper func(string) string) (io.Reader, error) {
	raw, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("zread: can't read config: %w", err)
	}
	return strings.NewReader(os.Expand(string(raw), mapper)), nil
}

// NewConfigFromToml creates a Config from a reader reading from a TOML
// configuration.
func NewConfigFromToml(f io.Reader) (*Config, error) {
	f, err := replaceEnvVars(f, os.Getenv)
	if err != nil {
		return nil, err
	}

	cfg := Config{}
	if _, err := toml.DecodeReader(f, &cfg); err != nil {
		return nil, fmt.Errorf("zread: can't parse config: %w", err)
	}
	cfg.fillDefaults()

	// Check format names now rather than on the first file.
	if _, err := cfg.ReaderConfig(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
