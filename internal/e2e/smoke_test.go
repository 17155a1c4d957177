package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)

	samples := strings.Repeat("12\n", 5)
	stdout, stderr, err := runDriveFocus(t, binaryPath, home, samples, "monitor", "run")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "monitoring stopped")

	stdout, stderr, err = runDriveFocus(t, binaryPath, home, "", "screen", "--caller", "+15551234567")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "allow +15551234567 (monitoring_off)")

	stdout, stderr, err = runDriveFocus(t, binaryPath, home, "", "status")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "DriveFocus")
	assert.Contains(t, stdout, "No rejected calls.")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "drivefocus-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/drivefocus")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build drivefocus binary: %s", string(output))
	return binaryPath
}

func runDriveFocus(t *testing.T, binaryPath, home, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "DRIVEFOCUS_CONFIG=")
	cmd.Stdin = strings.NewReader(stdin)

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
