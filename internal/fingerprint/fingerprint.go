// Package fingerprint produces content fingerprints for cache validation.
package fingerprint

import (
	"fmt"
	"io"
	"os"

	"github.com/zeebo/xxh3"
)

// File returns a 16 hex character xxh3 digest of the file's content.
// Content-based rather than mtime-based so a swapped archive with a
// preserved timestamp still invalidates the cache.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("fingerprint: open %s: %w", path, err)
	}
	defer f.Close()

	h := xxh3.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("fingerprint: read %s: %w", path, err)
	}
	return fmt.Sprintf("%016x", h.Sum64()), nil
}

// Bytes returns a 16 hex character xxh3 digest of data.
func Bytes(data []byte) string {
	return fmt.Sprintf("%016x", xxh3.Hash(data))
}
