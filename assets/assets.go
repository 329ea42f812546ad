// Package assets holds the documents bundled with the browser.
package assets

import "embed"

// Names of the bundled documents.
const (
	Homepage = "homepage.html"
	Help     = "help.html"
)

// FS contains the start page and the help page.
//
//go:embed homepage.html help.html
var FS embed.FS
