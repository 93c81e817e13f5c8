package types

const (
	TypeWebsocketPing  = "ping"
	TypeWebsocketPong  = "pong"
	TypeWebsocketChat  = "chat"
	TypeWebsocketError = "error"
)

type WebsocketRequest struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type WebsocketChatPayload struct {
	Content string `json:"content"`
}

// PaperIndexDoc is what gets written to the search index for one paper.
type PaperIndexDoc struct {
	PaperID     string
	Title       string
	Subject     string
	Board       string
	Class       string
	Year        int
	ExamType    string
	Description string
	Content     string
}
