// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
)

// Page represents a manifest entry. Missing fields are left empty.
type Page struct {
	URL      string         `json:"url"`      // url: Site-relative URL of the page, e.g. /about.
	Template string         `json:"template"` // template: Template file name inside the templates directory.
	Context  map[string]any `json:"context"`  // context: Variables passed to the template.
}

// LoadManifest reads the manifest at path.
func LoadManifest(path string) ([]Page, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", path, ErrManifestNotFound)
	} else if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var pages []Page
	if err := dec.Decode(&pages); err != nil {
		return nil, parseError(path, data, dec, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("extra data after the top-level value")
		}
		return nil, parseError(path, data, dec, err)
	}

	for i := range pages {
		pages[i].Context = normalizeMap(pages[i].Context)
	}
	return pages, nil
}

func parseError(path string, data []byte, dec *json.Decoder, err error) error {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
		offset    = dec.InputOffset()
	)
	switch {
	case errors.As(err, &syntaxErr):
		offset = syntaxErr.Offset
	case errors.As(err, &typeErr):
		offset = typeErr.Offset
	case err == io.EOF:
		// Empty or whitespace-only file.
		offset = int64(len(data))
		err = errors.New("unexpected end of JSON input")
	case errors.Is(err, io.ErrUnexpectedEOF):
		offset = int64(len(data))
	}
	line, col := position(data, offset)
	return fmt.Errorf("%s:%d:%d: %w: %w", path, line, col, ErrManifestParse, err)
}

// position converts a byte offset into a 1-based line and column.
func position(data []byte, offset int64) (line, col int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	before := data[:offset]
	line = bytes.Count(before, []byte("\n")) + 1
	col = int(offset) - (bytes.LastIndexByte(before, '\n') + 1)
	if col == 0 {
		col = 1
	}
	return line, col
}

// number is a non-integral JSON number. Templates print it in the shortest
// form that round-trips (9.99, 1000.0, 1e-05) instead of 9.990000.
type number float64

func (n number) String() string {
	f := float64(n)
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// normalizeMap replaces json.Number values with int64 when the number is an
// integer literal and number otherwise, so templates print 3 and 0.5 instead
// of 3.000000 and 0.500000.
func normalizeMap(m map[string]any) map[string]any {
	for k, v := range m {
		m[k] = normalize(v)
	}
	return m
}

func normalize(v any) any {
	switch v := v.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return number(f)
		}
		return v.String()
	case map[string]any:
		return normalizeMap(v)
	case []any:
		for i := range v {
			v[i] = normalize(v[i])
		}
		return v
	}
	return v
}
