// Package notify renders notification messages and display cards, and
// defines the gateway boundary through which they are delivered.
package notify

import "strings"

// Render substitutes {key} placeholders in template with the values in
// subs. Unknown placeholders are left verbatim in the output.
func Render(template string, subs map[string]string) string {
	out := template
	for key, value := range subs {
		out = strings.ReplaceAll(out, "{"+key+"}", value)
	}
	return out
}

// Compose prepends the ping prefix to a rendered body. An empty ping
// yields the body alone.
func Compose(ping, body string) string {
	if ping == "" {
		return body
	}
	return ping + " " + body
}
