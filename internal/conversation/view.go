package conversation

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"medchat/internal/domain"
)

// View es la superficie donde se dibuja el transcript.
type View interface {
	Show(msg domain.Message)
	ScrollToBottom()
}

// Viewport modela una ventana de altura fija sobre las líneas del transcript.
type Viewport struct {
	mu     sync.Mutex
	height int
	lines  int
	offset int
}

func NewViewport(height int) *Viewport {
	if height <= 0 {
		height = 1
	}
	return &Viewport{height: height}
}

// Show cuenta las líneas que ocupa el mensaje; un texto con saltos ocupa varias.
func (v *Viewport) Show(msg domain.Message) {
	v.mu.Lock()
	v.lines += strings.Count(msg.Text, "\n") + 1
	v.mu.Unlock()
}

func (v *Viewport) ScrollToBottom() {
	v.mu.Lock()
	v.offset = v.maxOffsetLocked()
	v.mu.Unlock()
}

// Offset devuelve la primera línea visible.
func (v *Viewport) Offset() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.offset
}

// MaxOffset devuelve el máximo desplazamiento posible.
func (v *Viewport) MaxOffset() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.maxOffsetLocked()
}

func (v *Viewport) maxOffsetLocked() int {
	if v.lines <= v.height {
		return 0
	}
	return v.lines - v.height
}

// TerminalView escribe cada mensaje como una línea en out.
type TerminalView struct {
	*Viewport
	out      io.Writer
	userName string
	botName  string
}

func NewTerminalView(out io.Writer, height int) *TerminalView {
	return &TerminalView{
		Viewport: NewViewport(height),
		out:      out,
		userName: "You",
		botName:  "Bot",
	}
}

func (t *TerminalView) Show(msg domain.Message) {
	name := t.userName
	if msg.Sender == domain.SenderBot {
		name = t.botName
	}
	fmt.Fprintf(t.out, "%s > %s\n", name, msg.Text)
	t.Viewport.Show(msg)
}
