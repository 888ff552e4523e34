// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// OutputPath returns the file a page with the given URL is written to: the
// URL without leading slashes, joined with root, plus index.html.
func OutputPath(root, url string) (string, error) {
	rel := filepath.FromSlash(strings.TrimLeft(url, "/"))
	if rel != "" && !filepath.IsLocal(rel) {
		return "", fmt.Errorf("%q: %w", url, ErrPageURL)
	}
	return filepath.Join(root, rel, "index.html"), nil
}

// writePage writes b to path, creating missing directories and replacing any
// existing file.
func writePage(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(b)); err != nil {
		return err
	}
	// atomic.WriteFile creates files readable only by the owner.
	return os.Chmod(path, 0o644)
}
