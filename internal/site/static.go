// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	mjson "github.com/tdewolff/minify/v2/json"
)

type min struct {
	m *minify.M
}

func newMin() *min {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.Add("text/html", &html.Minifier{
		KeepDocumentTags:    true,
		KeepDefaultAttrVals: true,
		KeepEndTags:         true,
	})
	m.AddFunc("application/javascript", js.Minify)
	m.AddFunc("application/json", mjson.Minify)

	return &min{m: m}
}

func (m *min) Bytes(mediaType string, b []byte) ([]byte, error) {
	return m.m.Bytes(mediaType, b)
}

var staticMediaTypes = map[string]string{
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
}

// copyStatic copies the src directory tree into dst, overwriting files that
// already exist there. It reports whether src was a directory; a missing src
// is not an error. If m is not nil, CSS, JavaScript and JSON files are
// minified.
func copyStatic(src, dst string, m *min) (bool, error) {
	fi, err := os.Stat(src)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	} else if err != nil {
		return false, err
	}
	if !fi.IsDir() {
		return false, nil
	}
	return true, copyTree(src, dst, m)
}

func copyTree(src, dst string, m *min) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		to := filepath.Join(dst, rel)

		// Follow symlinks, like the rest of the tree.
		if d.Type()&fs.ModeSymlink != 0 {
			fi, err := os.Stat(path)
			if err != nil {
				return err
			}
			if fi.IsDir() {
				target, err := filepath.EvalSymlinks(path)
				if err != nil {
					return err
				}
				return copyTree(target, to, m)
			}
		}

		if d.IsDir() {
			return os.MkdirAll(to, 0o755)
		}
		return copyFile(path, to, m)
	})
}

func copyFile(from, to string, m *min) error {
	fi, err := os.Stat(from)
	if err != nil {
		return err
	}

	src, err := os.Open(from)
	if err != nil {
		return err
	}
	defer src.Close()

	var r io.Reader = src
	if mediaType, ok := staticMediaTypes[filepath.Ext(from)]; ok && m != nil {
		buf, err := io.ReadAll(src)
		if err != nil {
			return err
		}
		minified, err := m.Bytes(mediaType, buf)
		if err != nil {
			return err
		}
		r = bytes.NewReader(minified)
	}

	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return err
	}
	dst, err := os.OpenFile(to, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return err
	}
	if err := dst.Close(); err != nil {
		return err
	}
	// O_CREATE doesn't change the mode of a file that already exists.
	return os.Chmod(to, fi.Mode().Perm())
}
