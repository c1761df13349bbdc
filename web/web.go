// Package web embeds the static front-end bundle.
package web

import "embed"

//go:embed static
var StaticFS embed.FS
