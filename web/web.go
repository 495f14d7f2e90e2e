// Package web holds the chat page served on GET /.
package web

import _ "embed"

//go:embed index.html
var indexHTML []byte

// IndexHTML returns the embedded chat UI document.
func IndexHTML() []byte {
	return indexHTML
}
