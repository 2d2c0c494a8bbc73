package utils

import "embed"

//go:embed templates/*.html
var templateFS embed.FS
