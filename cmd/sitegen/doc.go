// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Sitegen renders a static site from templates and a JSON manifest.

# Usage

	$ sitegen [flags] <input_dir> [flags]

The input directory must contain config.json and a templates directory. Pages
are written to <input_dir>/html unless -o is set. If <input_dir>/static exists,
its contents are copied over the rendered pages.

# Exit Codes

	0  Success.
	1  Unexpected failure, for example a write error.
	2  Invalid arguments, or config.json not found.
	3  config.json is not valid.
	4  A template failed to render.
*/
package main

import (
	_ "embed"

	"go.astrophena.name/base/cli"
)

//go:embed doc.go
var doc []byte

func init() { cli.SetDocComment(doc) }
