// Package web holds the server-rendered page templates.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var files embed.FS

var funcs = template.FuncMap{
	"imageURL":      imageURL,
	"experienceKey": experienceKey,
	"initials":      initials,
	"join":          strings.Join,
}

// Templates parses every page template into one set keyed by file name.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(funcs).ParseFS(files, "templates/*.html")
}

// imageURL allows inline PNG/JPEG/GIF/WebP data URLs alongside ordinary
// links; html/template would otherwise replace data URLs with #ZgotmplZ.
func imageURL(s string) template.URL {
	for _, prefix := range []string{"data:image/png;", "data:image/jpeg;", "data:image/gif;", "data:image/webp;"} {
		if strings.HasPrefix(s, prefix) {
			return template.URL(s)
		}
	}
	if strings.HasPrefix(s, "/") || strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return template.URL(s)
	}
	return template.URL("#")
}

func experienceKey(i int, field string) string {
	return fmt.Sprintf("experience_%d_%s", i, field)
}

func initials(name string) string {
	var out []rune
	for _, part := range strings.Fields(name) {
		out = append(out, []rune(part)[0])
		if len(out) == 2 {
			break
		}
	}
	return strings.ToUpper(string(out))
}
