package conversation

import (
	"sync"

	"medchat/internal/domain"
)

// Transcript es la secuencia ordenada y solo-append de mensajes mostrados.
type Transcript struct {
	mu       sync.Mutex
	view     View
	messages []domain.Message
}

func NewTranscript(view View) *Transcript {
	return &Transcript{view: view}
}

// Append agrega el mensaje, lo dibuja una sola vez y desplaza la vista al final.
// El lock cubre el dibujado para que el orden en pantalla sea el orden de append.
func (t *Transcript) Append(msg domain.Message) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, msg)
	if t.view == nil {
		return
	}
	t.view.Show(msg)
	t.view.ScrollToBottom()
}

// Messages devuelve una copia de los mensajes en orden cronológico.
func (t *Transcript) Messages() []domain.Message {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]domain.Message, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}
