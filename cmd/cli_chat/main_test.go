package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"go.uber.org/zap"

	"medchat/internal/conversation"
)

type echoTransport struct{ calls int }

func (e *echoTransport) Send(_ context.Context, message string) (string, error) {
	e.calls++
	return "echo " + message, nil
}

func TestChatLoop_StopsOnExitAndSkipsBlankLines(t *testing.T) {
	var out bytes.Buffer
	transport := &echoTransport{}
	client := conversation.NewClient(zap.NewNop(), transport, conversation.NewTranscript(conversation.NewTerminalView(&out, 10)))

	in := strings.NewReader("Hi\n   \n/exit\nignored\n")
	if err := chatLoop(context.Background(), in, client); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	client.Wait()

	if transport.calls != 1 {
		t.Fatalf("expected one exchange, got %d", transport.calls)
	}
	if out.String() != "You > Hi\nBot > echo Hi\n" {
		t.Fatalf("unexpected transcript output %q", out.String())
	}
}

func TestChatLoop_LastLineWithoutNewline(t *testing.T) {
	var out bytes.Buffer
	client := conversation.NewClient(zap.NewNop(), &echoTransport{}, conversation.NewTranscript(conversation.NewTerminalView(&out, 10)))

	if err := chatLoop(context.Background(), strings.NewReader("Hola"), client); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	client.Wait()

	if client.Transcript().Len() != 2 {
		t.Fatalf("expected 2 messages, got %d", client.Transcript().Len())
	}
}

func TestChatLoop_PlainExitWordIsAMessage(t *testing.T) {
	var out bytes.Buffer
	transport := &echoTransport{}
	client := conversation.NewClient(zap.NewNop(), transport, conversation.NewTranscript(conversation.NewTerminalView(&out, 10)))

	in := strings.NewReader("exit\nsalir\n/QUIT\n")
	if err := chatLoop(context.Background(), in, client); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	client.Wait()

	if transport.calls != 2 {
		t.Fatalf("expected exit and salir sent as messages, got %d exchanges", transport.calls)
	}
}
