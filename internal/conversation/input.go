package conversation

import "sync"

// InputField es el campo de texto desde donde el usuario envía mensajes.
type InputField interface {
	Value() string
	Clear()
}

// LineInput guarda la última línea leída de la terminal.
type LineInput struct {
	mu    sync.Mutex
	value string
}

func (l *LineInput) Set(value string) {
	l.mu.Lock()
	l.value = value
	l.mu.Unlock()
}

func (l *LineInput) Value() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value
}

func (l *LineInput) Clear() {
	l.Set("")
}
