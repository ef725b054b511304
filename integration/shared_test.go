//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedSircastPath holds the path to a shared sircast binary built once for all tests.
	sharedSircastPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getSircastBinary returns the path to the sircast binary, building it once if needed.
func getSircastBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "sircast-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		sircastPath := filepath.Join(tempDir, "sircast")
		buildCmd := exec.Command("go", "build", "-o", sircastPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build sircast: %v", err))
		}

		sharedSircastPath = sircastPath
	})

	return sharedSircastPath
}

// writeDataset writes a small CSV dataset under dir and returns its path.
func writeDataset(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write dataset %s: %v", name, err)
	}
	return path
}

// runSircastCommand runs the shared binary from workDir and returns combined output.
func runSircastCommand(t *testing.T, workDir string, args ...string) (string, error) {
	t.Helper()
	sircastPath := getSircastBinary()
	cmd := exec.Command(sircastPath, args...)
	cmd.Dir = workDir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), output)
	}
	return string(output), err
}
