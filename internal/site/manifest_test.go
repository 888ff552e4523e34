// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/base/testutil"
)

func TestLoadManifest(t *testing.T) {
	cases := map[string]struct {
		content string
		want    []Page
		wantErr error
		// wantPos is the line:column the error message must point at.
		wantPos string
	}{
		"valid": {
			content: `[
  {"url": "/", "template": "index.html", "context": {"title": "Home"}},
  {"url": "/about", "template": "about.html", "context": {}}
]`,
			want: []Page{
				{URL: "/", Template: "index.html", Context: map[string]any{"title": "Home"}},
				{URL: "/about", Template: "about.html", Context: map[string]any{}},
			},
		},
		"missing keys": {
			content: `[{"template": "index.html"}, {}]`,
			want: []Page{
				{Template: "index.html"},
				{},
			},
		},
		"numbers": {
			content: `[{"context": {"n": 3, "f": 0.5, "big": 1e3, "list": [1, 2.5], "nested": {"m": -7}}}]`,
			want: []Page{
				{Context: map[string]any{
					"n":      int64(3),
					"f":      number(0.5),
					"big":    number(1000),
					"list":   []any{int64(1), number(2.5)},
					"nested": map[string]any{"m": int64(-7)},
				}},
			},
		},
		"null": {
			content: `null`,
		},
		"empty array": {
			content: `[]`,
			want:    []Page{},
		},
		"trailing comma": {
			content: "[\n  {\"url\": \"/\"},\n]\n",
			wantErr: ErrManifestParse,
			wantPos: ":3:1:",
		},
		"extra data": {
			content: "[]\n[]\n",
			wantErr: ErrManifestParse,
		},
		"truncated": {
			content: `[{"url": "/"`,
			wantErr: ErrManifestParse,
		},
		"empty file": {
			content: "",
			wantErr: ErrManifestParse,
			wantPos: ":1:1:",
		},
		"not an array": {
			content: `{"url": "/"}`,
			wantErr: ErrManifestParse,
		},
		"wrong field type": {
			content: `[{"url": 42}]`,
			wantErr: ErrManifestParse,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json")
			if err := os.WriteFile(path, []byte(tc.content), 0o644); err != nil {
				t.Fatal(err)
			}

			got, err := LoadManifest(path)

			// Don't use && because we want to trap all cases where err is
			// nil.
			if err == nil {
				if tc.wantErr != nil {
					t.Fatalf("must fail with error: %v", tc.wantErr)
				}
			}

			if err != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("got error: %v", err)
				}
				if !strings.HasPrefix(err.Error(), path) {
					t.Fatalf("error %q doesn't mention the manifest path", err)
				}
				if tc.wantPos != "" && !strings.Contains(err.Error(), path+tc.wantPos) {
					t.Fatalf("error %q doesn't point at %s", err, tc.wantPos)
				}
				return
			}

			testutil.AssertEqual(t, got, tc.want)
		})
	}
}

func TestLoadManifestNotFound(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	_, err := LoadManifest(path)
	if !errors.Is(err, ErrManifestNotFound) {
		t.Fatalf("want %v, got %v", ErrManifestNotFound, err)
	}
	if errors.Is(err, ErrManifestParse) {
		t.Fatalf("missing manifest must not be reported as a parse error: %v", err)
	}
}

func TestLoadManifestDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config.json")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := LoadManifest(dir)
	if err == nil {
		t.Fatal("want error, got nil")
	}
	if errors.Is(err, ErrManifestNotFound) || errors.Is(err, ErrManifestParse) {
		t.Fatalf("reading a directory must fail with an I/O error, got %v", err)
	}
}

func TestNumberString(t *testing.T) {
	cases := map[string]struct {
		n    number
		want string
	}{
		"fraction":      {9.99, "9.99"},
		"negative":      {-0.5, "-0.5"},
		"whole":         {1000, "1000.0"},
		"zero":          {0, "0.0"},
		"small":         {0.0001, "0.0001"},
		"tiny":          {0.00001, "1e-05"},
		"large":         {1e15, "1000000000000000.0"},
		"huge":          {1e16, "1e+16"},
		"long fraction": {1.0 / 3, "0.3333333333333333"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, tc.n.String(), tc.want)
		})
	}
}

func TestPosition(t *testing.T) {
	cases := map[string]struct {
		data              string
		offset            int64
		wantLine, wantCol int
	}{
		"start":                 {"abc", 0, 1, 1},
		"first line":            {"abc", 2, 1, 2},
		"second line":           {"ab\ncd", 4, 2, 1},
		"second line end":       {"ab\ncd", 5, 2, 2},
		"past the end":          {"ab\ncd", 100, 2, 2},
		"right after a newline": {"ab\n", 3, 2, 1},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			line, col := position([]byte(tc.data), tc.offset)
			testutil.AssertEqual(t, line, tc.wantLine)
			testutil.AssertEqual(t, col, tc.wantCol)
		})
	}
}
