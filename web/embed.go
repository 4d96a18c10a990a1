package web

import "embed"

// Static embeds the UI pages and their assets.
//
//go:embed static
var Static embed.FS
