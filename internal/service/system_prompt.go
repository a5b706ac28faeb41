package service

import (
	"errors"
	"io/fs"
	"os"
	"strings"
)

// DefaultSystemPrompt se usa cuando el archivo de prompt no existe.
const DefaultSystemPrompt = "Default system message: I'm a helpful assistant."

// SystemPromptLoader lee el prompt de sistema en cada request para permitir editarlo en caliente.
type SystemPromptLoader struct {
	path string
}

func NewSystemPromptLoader(path string) *SystemPromptLoader {
	return &SystemPromptLoader{path: path}
}

func (l *SystemPromptLoader) Load() (string, error) {
	if l == nil || strings.TrimSpace(l.path) == "" {
		return DefaultSystemPrompt, nil
	}
	data, err := os.ReadFile(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSystemPrompt, nil
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
