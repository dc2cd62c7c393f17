package config

import (
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/tkingovr/mcp-probe/api"
	"gopkg.in/yaml.v3"
)

// Config is the runtime configuration for a probe run.
type Config struct {
	Host            string
	Port            int
	SSEPath         string
	MCPPath         string
	Timeout         time.Duration
	ProtocolVersion string
	Client          api.ClientInfo
	Format          string
}

// File is the on-disk YAML layout.
type File struct {
	Version         int           `yaml:"version"`
	Target          TargetSection `yaml:"target"`
	Timeout         string        `yaml:"timeout,omitempty"`
	Client          ClientSection `yaml:"client"`
	ProtocolVersion string        `yaml:"protocol_version,omitempty"`
	Format          string        `yaml:"format,omitempty"`
}

// TargetSection locates the MCP server.
type TargetSection struct {
	Host    string `yaml:"host,omitempty"`
	Port    int    `yaml:"port,omitempty"`
	SSEPath string `yaml:"sse_path,omitempty"`
	MCPPath string `yaml:"mcp_path,omitempty"`
}

// ClientSection overrides the clientInfo sent in the initialize request.
type ClientSection struct {
	Name    string `yaml:"name,omitempty"`
	Version string `yaml:"version,omitempty"`
}

// Load reads a YAML config file and produces a runtime Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadBytes(data)
}

// LoadBytes parses YAML data and produces a runtime Config.
// Fields missing from the file keep their defaults.
func LoadBytes(data []byte) (*Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}
	if f.Version != 1 {
		return nil, fmt.Errorf("unsupported config version: %d (expected 1)", f.Version)
	}
	return fromFile(&f)
}

func fromFile(f *File) (*Config, error) {
	cfg := DefaultConfig()

	if f.Target.Host != "" {
		cfg.Host = f.Target.Host
	}
	if f.Target.Port != 0 {
		cfg.Port = f.Target.Port
	}
	if f.Target.SSEPath != "" {
		cfg.SSEPath = f.Target.SSEPath
	}
	if f.Target.MCPPath != "" {
		cfg.MCPPath = f.Target.MCPPath
	}

	if f.Timeout != "" {
		d, err := time.ParseDuration(f.Timeout)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", f.Timeout, err)
		}
		cfg.Timeout = d
	}

	if f.Client.Name != "" {
		cfg.Client.Name = f.Client.Name
	}
	if f.Client.Version != "" {
		cfg.Client.Version = f.Client.Version
	}
	if f.ProtocolVersion != "" {
		cfg.ProtocolVersion = f.ProtocolVersion
	}
	if f.Format != "" {
		cfg.Format = f.Format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when nothing is overridden:
// localhost:8001 with a 5s bound per request.
func DefaultConfig() *Config {
	return &Config{
		Host:            DefaultHost,
		Port:            DefaultPort,
		SSEPath:         DefaultSSEPath,
		MCPPath:         DefaultMCPPath,
		Timeout:         DefaultTimeout,
		ProtocolVersion: DefaultProtocolVersion,
		Client: api.ClientInfo{
			Name:    DefaultClientName,
			Version: DefaultClientVersion,
		},
		Format: DefaultFormat,
	}
}

// Validate checks that the config can drive a probe run.
func (c *Config) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("host is required")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d: must be between 1 and 65535", c.Port)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %s: must be positive", c.Timeout)
	}
	if !strings.HasPrefix(c.SSEPath, "/") {
		return fmt.Errorf("invalid sse_path %q: must start with /", c.SSEPath)
	}
	if !strings.HasPrefix(c.MCPPath, "/") {
		return fmt.Errorf("invalid mcp_path %q: must start with /", c.MCPPath)
	}
	switch c.Format {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("invalid format %q: expected %s or %s", c.Format, FormatText, FormatJSON)
	}
	return nil
}

// BaseURL returns the target base address, e.g. http://localhost:8001.
func (c *Config) BaseURL() string {
	u := url.URL{
		Scheme: "http",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
	}
	return u.String()
}

// SSEURL returns the full URL of the SSE endpoint.
func (c *Config) SSEURL() string {
	return c.BaseURL() + c.SSEPath
}

// MCPURL returns the full URL of the JSON-RPC endpoint.
func (c *Config) MCPURL() string {
	return c.BaseURL() + c.MCPPath
}

// MarshalYAML serializes the config back into its file layout.
func (c *Config) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(&File{
		Version: 1,
		Target: TargetSection{
			Host:    c.Host,
			Port:    c.Port,
			SSEPath: c.SSEPath,
			MCPPath: c.MCPPath,
		},
		Timeout: c.Timeout.String(),
		Client: ClientSection{
			Name:    c.Client.Name,
			Version: c.Client.Version,
		},
		ProtocolVersion: c.ProtocolVersion,
		Format:          c.Format,
	})
}
