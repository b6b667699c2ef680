// Package api embeds the OpenAPI document so the binary serves the same contract it was built with.
package api

import _ "embed"

//go:embed openapi.yml
var OpenAPISpec []byte
