package gallery

import "strings"

// escapeHTML escapes the four characters that matter for safely
// embedding text in HTML attributes and element bodies.
func escapeHTML(s string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
	)
	return r.Replace(s)
}

// escapeJS escapes the three characters that matter for safely
// embedding text inside a double-quoted JS/JSON string literal.
func escapeJS(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"\n", `\n`,
	)
	return r.Replace(s)
}
