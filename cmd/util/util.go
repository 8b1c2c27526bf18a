package util

import (
	"fmt"
	"strings"

	"github.com/ValentinKolb/echoprobe/rpc/common"
	"github.com/ValentinKolb/echoprobe/rpc/serializer"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	// Wrap is the number of characters to Wrap the help text at
	Wrap int = 50

	// EnvPrefix is the prefix of all environment variables read by echoprobe
	EnvPrefix = "echoprobe"
)

// WrapString wraps a string at Wrap characters
func WrapString(text string) string {
	var wrappedLines []string
	var currentLine strings.Builder
	lineWidth := 0

	for _, word := range strings.Fields(text) {
		wordWidth := len(word)

		// Check if we need to wrap
		if lineWidth > 0 && lineWidth+1+wordWidth > Wrap {
			wrappedLines = append(wrappedLines, currentLine.String())
			currentLine.Reset()
			lineWidth = 0
		}

		// Add space before word (if not first word on line)
		if lineWidth > 0 {
			currentLine.WriteString(" ")
			lineWidth++
		}

		// Add the word
		currentLine.WriteString(word)
		lineWidth += wordWidth
	}

	// Add any remaining text
	if currentLine.Len() > 0 {
		wrappedLines = append(wrappedLines, currentLine.String())
	}

	return strings.Join(wrappedLines, "\n")
}

// SetupGlobalFlags adds the flags shared by all commands to the root command
func SetupGlobalFlags(cmd *cobra.Command) {
	key := "serializer"
	cmd.PersistentFlags().String(key, "json", WrapString("serializer to use (json, gob, binary)"))

	key = "log-level"
	cmd.PersistentFlags().String(key, "warn", WrapString("level at which logs will be written to stderr (debug, info, warn, error)"))

	key = "config"
	cmd.PersistentFlags().String(key, "", WrapString("optional config file (yaml, json, toml, env)"))
}

// SetupRPCClientFlags adds the transport flags to a command
func SetupRPCClientFlags(cmd *cobra.Command) {
	key := "timeout"
	cmd.PersistentFlags().Int(key, 10, WrapString("The timeout in seconds of a single request"))

	key = "transport-retries"
	cmd.PersistentFlags().Int(key, 3, WrapString("How many times to send a request that failed before giving up. A request that timed out is not sent again"))

	key = "transport-idle-conns"
	cmd.PersistentFlags().Int(key, 1, WrapString("How many idle connections to keep per endpoint"))

	key = "tls-insecure"
	cmd.PersistentFlags().Bool(key, false, WrapString("Skip verification of the server certificate (self-signed development servers)"))

	key = "tls-ca-file"
	cmd.PersistentFlags().String(key, "", WrapString("PEM file with additional certificates to trust for the https endpoint"))
}

// InitClientConfig initializes configuration from environment variables
func InitClientConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}

// ReadConfigFile reads the file given with --config, if any.
// Values from the file have lower priority than flags and environment variables.
func ReadConfigFile() error {
	path := viper.GetString("config")
	if path == "" {
		return nil
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return nil
}

// GetClientConfig reads client configuration from viper
func GetClientConfig() *common.ClientConfig {
	conf := &common.ClientConfig{
		TimeoutSecond:       viper.GetInt("timeout"),
		RetryCount:          viper.GetInt("transport-retries"),
		MaxIdleConnsPerHost: viper.GetInt("transport-idle-conns"),
		TLS: common.TLSConfig{
			InsecureSkipVerify: viper.GetBool("tls-insecure"),
			CAFile:             viper.GetString("tls-ca-file"),
		},
		LogLevel: viper.GetString("log-level"),
	}

	return conf
}

// GetSerializer creates a serializer based on configuration
func GetSerializer() (serializer.IRPCSerializer, error) {
	return serializer.ByName(viper.GetString("serializer"))
}

// BindCommandFlags binds a command's flags to viper
func BindCommandFlags(cmd *cobra.Command) error {
	return viper.BindPFlags(cmd.Flags())
}
