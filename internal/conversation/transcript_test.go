package conversation

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"medchat/internal/domain"
)

func waitForLen(t *testing.T, tr *Transcript, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for tr.Len() < n {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %d messages, have %d", n, tr.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestTranscriptAppend_OrderAndSnapshot(t *testing.T) {
	tr := NewTranscript(nil)
	tr.Append(domain.UserMessage("a"))
	tr.Append(domain.BotMessage("b"))

	snap := tr.Messages()
	snap[0].Text = "mutated"

	got := tr.Messages()
	if got[0].Text != "a" || got[1].Text != "b" {
		t.Fatalf("expected stored messages untouched, got %+v", got)
	}
}

func TestTranscriptAppend_ConcurrentAppendsKeepEveryMessage(t *testing.T) {
	view := NewViewport(5)
	tr := NewTranscript(view)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Append(domain.BotMessage("x"))
		}()
	}
	wg.Wait()

	if tr.Len() != 50 {
		t.Fatalf("expected 50 messages, got %d", tr.Len())
	}
	if view.Offset() != 45 || view.MaxOffset() != 45 {
		t.Fatalf("expected offset at 45, got %d/%d", view.Offset(), view.MaxOffset())
	}
}

func TestViewport_ShortTranscriptDoesNotScroll(t *testing.T) {
	v := NewViewport(3)
	v.Show(domain.UserMessage("a"))
	v.ScrollToBottom()
	if v.Offset() != 0 || v.MaxOffset() != 0 {
		t.Fatalf("expected zero offset, got %d/%d", v.Offset(), v.MaxOffset())
	}
}

func TestTerminalView_RendersSenders(t *testing.T) {
	var buf bytes.Buffer
	tr := NewTranscript(NewTerminalView(&buf, 24))
	tr.Append(domain.UserMessage("Hi"))
	tr.Append(domain.BotMessage("hello"))

	want := "You > Hi\nBot > hello\n"
	if buf.String() != want {
		t.Fatalf("expected %q, got %q", want, buf.String())
	}
}

func TestViewport_MultiLineMessagesCountEveryLine(t *testing.T) {
	var buf bytes.Buffer
	view := NewTerminalView(&buf, 3)
	tr := NewTranscript(view)
	tr.Append(domain.UserMessage("products?"))
	tr.Append(domain.BotMessage("1. Whey Plus\n2. Vita C\n3. Omega"))

	if view.MaxOffset() != 1 || view.Offset() != 1 {
		t.Fatalf("expected 4 lines in a 3-line view (offset 1), got %d/%d", view.Offset(), view.MaxOffset())
	}
}
