package domain

// Sender identifica quién escribió un mensaje del transcript.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message es una entrada inmutable del transcript.
type Message struct {
	Sender Sender `json:"sender"`
	Text   string `json:"text"`
}

// UserMessage construye un mensaje del usuario.
func UserMessage(text string) Message {
	return Message{Sender: SenderUser, Text: text}
}

// BotMessage construye un mensaje del bot.
func BotMessage(text string) Message {
	return Message{Sender: SenderBot, Text: text}
}
