package config

import "time"

const (
	DefaultHost            = "localhost"
	DefaultPort            = 8001
	DefaultSSEPath         = "/mcp/sse"
	DefaultMCPPath         = "/mcp"
	DefaultTimeout         = 5 * time.Second
	DefaultProtocolVersion = "2025-06-18"
	DefaultClientName      = "test-client"
	DefaultClientVersion   = "1.0.0"
	DefaultFormat          = FormatText
	DefaultDotEnv          = ".env"
)

// Output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)
