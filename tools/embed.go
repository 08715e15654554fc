package tools

import (
	"embed"
)

// ConfigFiles embeds the YAML analysis recipes under config/. The guidance
// registry reads these at startup.
//
//go:embed all:config
var ConfigFiles embed.FS
