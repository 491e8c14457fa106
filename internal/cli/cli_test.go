package cli

import (
	"bytes"
	"strings"
	"testing"
)

func executeCommand(args ...string) (string, error) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("version command failed: %v", err)
	}
	if !strings.Contains(out, "oscwatch version") {
		t.Errorf("expected output to contain 'oscwatch version', got: %s", out)
	}
}

func TestMonitorRejectsBadFlags(t *testing.T) {
	if _, err := executeCommand("monitor", "--output", "xml"); err == nil {
		t.Error("monitor --output xml should fail validation")
	}
	if _, err := executeCommand("monitor", "--port", "0"); err == nil {
		t.Error("monitor --port 0 should fail validation")
	}
	if _, err := executeCommand("monitor", "--address", "not-an-ip"); err == nil {
		t.Error("monitor with a bad address should fail validation")
	}
}

func TestSendRejectsBadTarget(t *testing.T) {
	if _, err := executeCommand("send", "--target", "nohost"); err == nil {
		t.Error("send --target without a port should fail validation")
	}
	if _, err := executeCommand("send", "--target", "host:99999"); err == nil {
		t.Error("send --target with an out-of-range port should fail validation")
	}
}

func TestMissingConfigFile(t *testing.T) {
	if _, err := executeCommand("version", "--config", "/does/not/exist.toml"); err == nil {
		t.Error("a named but missing config file should fail")
	}
}
