package domain

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn es un mensaje del historial que se envía al LLM.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
