// Package data embeds fixture route fares for the offline provider.
package data

import _ "embed"

//go:embed routes.json
var Routes []byte
