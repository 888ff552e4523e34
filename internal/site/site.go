// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Package site renders a static site from a manifest of pages.

# Directory Structure

The input directory has the following layout:

	config.json  The manifest: a JSON array of pages to render.
	templates    Templates that pages are rendered with. They use the
	             Django/Jinja-like syntax of pongo2.
	static       Optional. Files in this directory are copied verbatim to the
	             generated site after all pages are written.

# Manifest

Each manifest entry names the page URL, the template and the template
context:

	[
	  {
	    "url": "/about",
	    "template": "about.html",
	    "context": {"title": "About"}
	  }
	]

A page is written to <url>/index.html under the output directory, so the
entry above produces about/index.html. Pages sharing a URL overwrite each
other in manifest order.

# Template Globals

In addition to the page context, templates can call:

	{{ markdown(text) }}  Renders the Markdown text to HTML.
*/
package site

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go.astrophena.name/sitegen/internal/logger"
)

// Possible errors, matched with errors.Is.
var (
	ErrManifestNotFound = errors.New("manifest not found")
	ErrManifestParse    = errors.New("failed to parse manifest")
	ErrTemplate         = errors.New("failed to render template")
	ErrOutputExists     = errors.New("output directory already exists")
	ErrPageURL          = errors.New("page URL points outside of the output directory")
)

// Config represents a build configuration.
type Config struct {
	// Src is the directory where to read config.json, templates and static
	// files from. If empty, uses the current directory.
	Src string
	// Dst is the directory where to write files. If empty, uses the html
	// directory inside Src.
	Dst string
	// Verbose determines if a line should be logged for every written page and
	// for the static files copy.
	Verbose bool
	// Minify determines if rendered pages and static CSS, JavaScript and JSON
	// files should be minified.
	Minify bool
	// Logf specifies a logger to use. If nil, log.Printf is used.
	Logf logger.Logf
	// Warn is called with problems that don't stop the build. If nil, they
	// are logged with Logf.
	Warn func(error)
}

func (c *Config) setDefaults() {
	if c.Logf == nil {
		c.Logf = log.Printf
	}

	if c.Src == "" {
		c.Src = "."
	}

	if c.Dst == "" {
		c.Dst = filepath.Join(c.Src, "html")
	}

	if c.Warn == nil {
		c.Warn = func(err error) { c.Logf("%v", err) }
	}
}

// Build builds a site based on the provided [Config].
//
// An existing output directory is reported through Warn, but doesn't stop
// the build. The first failing page stops the build; pages written before it
// are left in place.
func Build(c *Config) error {
	c.setDefaults()

	if _, err := os.Stat(c.Dst); err == nil {
		c.Warn(fmt.Errorf("%s: %w", c.Dst, ErrOutputExists))
	}

	pages, err := LoadManifest(filepath.Join(c.Src, "config.json"))
	if err != nil {
		return err
	}

	r := NewRenderer(filepath.Join(c.Src, "templates"))
	var m *min
	if c.Minify {
		m = newMin()
	}

	for _, p := range pages {
		html, err := r.Render(p.Template, p.Context)
		if err != nil {
			return err
		}

		dst, err := OutputPath(c.Dst, p.URL)
		if err != nil {
			return err
		}

		b := []byte(html)
		if m != nil {
			if b, err = m.Bytes("text/html", b); err != nil {
				return fmt.Errorf("%s: %w", dst, err)
			}
		}
		if err := writePage(dst, b); err != nil {
			return err
		}

		if c.Verbose {
			c.Logf("Rendered index.html -> %s", dst)
		}
	}

	staticDir := filepath.Join(c.Src, "static")
	copied, err := copyStatic(staticDir, c.Dst, m)
	if err != nil {
		return err
	}
	if copied && c.Verbose {
		c.Logf("Copied %s -> %s", staticDir, c.Dst)
	}

	return nil
}
