// Package templating resuelve los tokens {{variable}} de plantillas de documentos y correos.
//
// Un token no resuelto se deja tal cual en el texto y se reporta en Missing, de modo que el
// usuario vea qué faltó en lugar de recibir un hueco vacío.
package templating

import (
	"regexp"
	"strings"
)

var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_.]*)\s*\}\}`)

// ExtractVariables devuelve los nombres distintos en orden de primera aparición.
func ExtractVariables(texts ...string) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, text := range texts {
		for _, m := range tokenRe.FindAllStringSubmatch(text, -1) {
			name := m[1]
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			out = append(out, name)
		}
	}
	return out
}

// Result texto renderizado y variables sin valor.
type Result struct {
	Text    string   `json:"text"`
	Missing []string `json:"missing"`
}

// Render sustituye cada token con values[name]. Un valor presente aunque sea "" cuenta como resuelto.
func Render(text string, values map[string]string) Result {
	var missing []string
	seen := make(map[string]struct{})
	out := tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		name := tokenRe.FindStringSubmatch(tok)[1]
		if v, ok := values[name]; ok {
			return v
		}
		if _, dup := seen[name]; !dup {
			seen[name] = struct{}{}
			missing = append(missing, name)
		}
		return tok
	})
	if missing == nil {
		missing = []string{}
	}
	return Result{Text: out, Missing: missing}
}

// MergeMissing une las listas de faltantes de varios Render sin duplicar.
func MergeMissing(results ...Result) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, r := range results {
		for _, m := range r.Missing {
			if _, ok := seen[m]; ok {
				continue
			}
			seen[m] = struct{}{}
			out = append(out, m)
		}
	}
	return out
}

// Normalize elimina espacios internos de los tokens: "{{ name }}" -> "{{name}}".
func Normalize(text string) string {
	return tokenRe.ReplaceAllStringFunc(text, func(tok string) string {
		return "{{" + strings.TrimSpace(tokenRe.FindStringSubmatch(tok)[1]) + "}}"
	})
}
