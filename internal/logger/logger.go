// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package logger defines the type used for progress output.
package logger

// Logf is the basic logger type: a printf-like func. Like log.Printf, the
// format need not end in a newline.
type Logf func(format string, args ...any)

// Discard is a Logf that drops everything.
func Discard(string, ...any) {}
