// ABOUTME: Embedded property-list widget bundle for ChatGPT Apps SDK rendering
// ABOUTME: Exposes the widget URI, MIME type, and HTML document
package widget

import _ "embed"

// URI is the resource address ChatGPT resolves the widget from; tools
// reference it through the openai/outputTemplate metadata key.
const URI = "ui://widget/property-list.html"

// MIMEType marks the resource as a Skybridge widget document.
const MIMEType = "text/html+skybridge"

//go:embed property-list.html
var html string

// HTML returns the self-contained widget document.
func HTML() string {
	return html
}
