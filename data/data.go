// Package data embeds the default Bangladesh administrative catalog:
// one YAML file per category (divisions, districts, upazilas).
package data

import "embed"

// FS holds divisions.yaml, districts.yaml and upazilas.yaml.
//
//go:embed *.yaml
var FS embed.FS
