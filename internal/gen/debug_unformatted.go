package gen

import (
	"os"
	"path/filepath"
)

// writeDebugUnformatted dumps source that go/format rejected next to where
// the file would have gone. The ".unformatted" suffix keeps the go tool
// from compiling it with the package. Failures are ignored by callers.
func writeDebugUnformatted(outDir, filename string, content []byte) error {
	if outDir == "" || filename == "" {
		return nil
	}

	p := filepath.Join(outDir, filepath.FromSlash(filename)+".unformatted")

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}

	return os.WriteFile(p, content, 0o644)
}
