package common

import (
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    logger.LogLevel
		wantErr bool
	}{
		{"debug", logger.DEBUG, false},
		{"INFO", logger.INFO, false},
		{"warn", logger.WARNING, false},
		{"warning", logger.WARNING, false},
		{"error", logger.ERROR, false},
		{"verbose", logger.INFO, true},
		{"", logger.INFO, true},
	}

	for _, tt := range tests {
		got, err := ParseLogLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInitLoggers(t *testing.T) {
	if err := InitLoggers("nope"); err == nil {
		t.Error("Expected error for invalid level")
	}
	if err := InitLoggers("error"); err != nil {
		t.Errorf("InitLoggers failed: %v", err)
	}

	l, ok := CreateLogger("probe").(*probeLogger)
	if !ok {
		t.Fatalf("Expected *probeLogger, got %T", CreateLogger("probe"))
	}
	if l.name != "probe" {
		t.Errorf("Expected name probe, got %s", l.name)
	}
}

func TestClientConfigString(t *testing.T) {
	c := &ClientConfig{TimeoutSecond: 7, RetryCount: 2, TLS: TLSConfig{InsecureSkipVerify: true}, LogLevel: "info"}
	s := c.String()
	for _, want := range []string{"7 sec", "Skip Verify", "(system pool)", "info"} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in %s", want, s)
		}
	}
}
