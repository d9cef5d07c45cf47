// Package web holds the page templates and stylesheets compiled into the
// server binary.
package web

import "embed"

//go:embed templates/*.html static/css/*.css
var FS embed.FS
