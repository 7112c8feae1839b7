package domain

import "fmt"

// ModeMinimal is reported in traces and on the liveness route while the
// service runs without the AI backend.
const ModeMinimal = "minimal"

// ChatTrace describes how an answer was produced.
type ChatTrace struct {
	Mode            string `json:"mode"`
	AzureConfigured bool   `json:"azure_configured"`
}

// ChatExchange is the body of a successful POST /chat-json/.
type ChatExchange struct {
	Success  bool      `json:"success"`
	Question string    `json:"question"`
	Answer   string    `json:"answer"`
	Trace    ChatTrace `json:"trace"`
}

// MinimalAnswer is the canned answer; it always quotes the question verbatim.
func MinimalAnswer(question string) string {
	return fmt.Sprintf("[Modo Minimal] Recibí tu pregunta: '%s'. Tu backend Azure completo está configurado pero ejecutándose en modo básico por limitaciones del entorno.", question)
}

// NewMinimalChatExchange answers a question without consulting any model.
func NewMinimalChatExchange(question string, azureConfigured bool) ChatExchange {
	return ChatExchange{
		Success:  true,
		Question: question,
		Answer:   MinimalAnswer(question),
		Trace: ChatTrace{
			Mode:            ModeMinimal,
			AzureConfigured: azureConfigured,
		},
	}
}

// Status is the body of GET /.
type Status struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// MinimalStatus is the liveness payload the frontend health check looks for.
func MinimalStatus() Status {
	return Status{
		Message: "API de Agente Contable está funcionando",
		Status:  ModeMinimal + "_mode",
	}
}
