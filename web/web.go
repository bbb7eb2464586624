// Package web carries the embedded templates and static assets for the
// public pages.
package web

import "embed"

//go:embed templates/*.html
var Templates embed.FS

//go:embed static
var Static embed.FS
