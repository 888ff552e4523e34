// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package site

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/flosch/pongo2/v6"
	"rsc.io/markdown"
)

// Renderer renders templates from a single directory. Each Renderer has its
// own template set, so renderers with different directories don't affect each
// other.
type Renderer struct {
	set *pongo2.TemplateSet
	md  *markdown.Parser
}

// NewRenderer returns a Renderer that loads templates from dir.
func NewRenderer(dir string) *Renderer {
	r := &Renderer{
		md: &markdown.Parser{
			HeadingID:     true,
			Strikethrough: true,
			TaskList:      true,
			AutoLinkText:  true,
			Table:         true,
			Emoji:         true,
			SmartDot:      true,
			SmartDash:     true,
			SmartQuote:    true,
			Footnote:      true,
		},
	}
	r.set = pongo2.NewSet("site", &templateLoader{dir: dir})
	r.set.Globals["markdown"] = r.markdown
	return r
}

// Render executes the template name with ctx as variables. Values are
// HTML-escaped unless the template marks them safe, whatever the template's
// file extension.
//
// Top-level keys that aren't identifiers, like "og:title", can't be referenced
// from a template and are left out.
func (r *Renderer) Render(name string, ctx map[string]any) (string, error) {
	tpl, err := r.set.FromFile(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", name, ErrTemplate, err)
	}
	s, err := tpl.Execute(variables(ctx))
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", name, ErrTemplate, err)
	}
	return s, nil
}

// identRe matches the context keys pongo2 accepts.
var identRe = regexp.MustCompile("^[a-zA-Z0-9_]+$")

func variables(ctx map[string]any) pongo2.Context {
	vars := make(pongo2.Context, len(ctx))
	for k, v := range ctx {
		if identRe.MatchString(k) {
			vars[k] = v
		}
	}
	return vars
}

func (r *Renderer) markdown(text *pongo2.Value) *pongo2.Value {
	doc := r.md.Parse(text.String())
	return pongo2.AsSafeValue(markdown.ToHTML(doc))
}

var errTemplateNotFound = errors.New("template not found")

// templateLoader loads templates from dir. Like Jinja, it strips a single
// trailing newline from each template.
type templateLoader struct {
	dir string
}

// Abs implements the pongo2.TemplateLoader interface. Included and extended
// templates are always resolved relative to dir.
func (l *templateLoader) Abs(_, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(l.dir, filepath.FromSlash(name))
}

// Get implements the pongo2.TemplateLoader interface.
func (l *templateLoader) Get(path string) (io.Reader, error) {
	rel, err := filepath.Rel(l.dir, path)
	if err != nil || !filepath.IsLocal(rel) {
		return nil, errTemplateNotFound
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if bytes.HasSuffix(b, []byte("\r\n")) {
		b = b[:len(b)-2]
	} else if bytes.HasSuffix(b, []byte("\n")) {
		b = b[:len(b)-1]
	}
	return bytes.NewReader(b), nil
}
