package agent

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"langsync/internal/store"
)

// hashLength keeps the content hash short enough for file names while still
// changing on every content edit.
const hashLength = 12

// Snapshot derives the metadata blob from a directory of {lang}.json
// translation files. It is the agent's stand-in for the metadata object the
// browser reads off the host frontend.
func Snapshot(dir string) (store.Blob, error) {
	files, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read translations directory: %w", err)
	}

	blob := store.Blob{}
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".json") {
			continue
		}

		lang := strings.TrimSuffix(file.Name(), ".json")
		content, err := os.ReadFile(filepath.Join(dir, file.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", file.Name(), err)
		}

		if !json.Valid(content) {
			log.Warn("Skipping invalid translation file", "file", file.Name())
			continue
		}

		blob[lang] = store.LanguageEntry{
			"nativeName": nativeName(lang),
			"isRTL":      isRTL(lang),
			"hash":       contentHash(content),
		}
	}

	return blob, nil
}

func contentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])[:hashLength]
}
