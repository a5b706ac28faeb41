package service

import "strings"

const markdownWrappers = "*_`"

// cleanLLMLabelValue quita el énfasis markdown (**x**, _x_, `x`) que envuelve
// un valor. Lo que queda adentro se conserva tal cual: sugar_free o vitamin.*c
// son patrones válidos del catálogo.
func cleanLLMLabelValue(raw string) string {
	s := strings.TrimPrefix(raw, "\uFEFF")
	for {
		trimmed := strings.Trim(strings.TrimSpace(s), markdownWrappers)
		if trimmed == s {
			return s
		}
		s = trimmed
	}
}
