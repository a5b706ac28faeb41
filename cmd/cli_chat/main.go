package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"medchat/internal/chatapi"
	"medchat/internal/config"
	"medchat/internal/conversation"
)

func main() {
	ctx := context.Background()

	_ = godotenv.Load()

	cfg, err := config.LoadClientConfig()
	if err != nil {
		log.Fatal(err)
	}

	// Logs a stderr; stdout queda para el transcript.
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	api := chatapi.NewClient(cfg.ChatAPIURL, logger)
	defer api.Close()

	view := conversation.NewTerminalView(os.Stdout, cfg.ViewportHeight)
	client := conversation.NewClient(logger, api, conversation.NewTranscript(view))

	fmt.Printf("---- Chat con %s (escribe /exit o /quit para terminar) ----\n", cfg.ChatAPIURL)
	if err := chatLoop(ctx, os.Stdin, client); err != nil {
		logger.Error("read input", zap.Error(err))
	}

	client.Wait()
	fmt.Println("Saliendo del chat...")
}

// isExitCommand reconoce /exit y /quit; cualquier otra línea, incluida "exit", es un mensaje.
func isExitCommand(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "/exit", "/quit":
		return true
	}
	return false
}

// chatLoop lee líneas hasta EOF o un comando de salida y envía cada una sin esperar la respuesta.
func chatLoop(ctx context.Context, in io.Reader, client *conversation.Client) error {
	reader := bufio.NewReader(in)
	input := &conversation.LineInput{}
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			if isExitCommand(line) {
				return nil
			}
			input.Set(line)
			client.Submit(ctx, input)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("leer input: %w", err)
		}
	}
}
