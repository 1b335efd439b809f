package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// TestContext creates a test context with timeout
func TestContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)
	return ctx
}

// LoadTempConfig writes content to a temporary langsync.toml and points the
// global viper instance at it. Viper state is reset first and the file is
// cleaned up with the test.
func LoadTempConfig(t *testing.T, content string) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "langsync.toml")

	err := os.WriteFile(configFile, []byte(content), 0644)
	require.NoError(t, err)

	viper.Reset()
	viper.SetConfigFile(configFile)
	err = viper.ReadInConfig()
	require.NoError(t, err)
}

// WriteTranslationFile drops a {lang}.json file into dir.
func WriteTranslationFile(t *testing.T, dir, lang, content string) {
	err := os.WriteFile(filepath.Join(dir, lang+".json"), []byte(content), 0644)
	require.NoError(t, err)
}

// AssertEventuallyTrue retries a condition until it's true or times out
func AssertEventuallyTrue(t *testing.T, condition func() bool, timeout time.Duration, message string) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("Condition never became true: %s", message)
}
