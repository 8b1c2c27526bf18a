package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// TLSConfig holds the settings used for https endpoints
type TLSConfig struct {
	// InsecureSkipVerify disables certificate verification (self-signed development servers)
	InsecureSkipVerify bool
	// CAFile is an optional PEM file with additional trusted certificates
	CAFile string
}

type ClientConfig struct {
	TimeoutSecond       int
	RetryCount          int
	MaxIdleConnsPerHost int
	TLS                 TLSConfig

	// Logging configuration
	LogLevel string
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Timeout", fmt.Sprintf("%d sec", c.TimeoutSecond))
	addField("Retry Count", strconv.Itoa(c.RetryCount))
	addField("Idle Conns Per Host", strconv.Itoa(max(1, c.MaxIdleConnsPerHost)))

	// TLS
	addSection("TLS")
	addField("Skip Verify", strconv.FormatBool(c.TLS.InsecureSkipVerify))
	if c.TLS.CAFile != "" {
		addField("CA File", c.TLS.CAFile)
	} else {
		addField("CA File", "(system pool)")
	}

	// Logging configuration
	addSection("Logging")
	addField("Log Level", c.LogLevel)

	return sb.String()
}
