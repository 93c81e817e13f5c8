package types

// ChatMessage is a single turn in the conversation history.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// PaperContext is the optional paper the student is asking about.
type PaperContext struct {
	Title       string `json:"title"`
	Subject     string `json:"subject"`
	Board       string `json:"board"`
	Class       string `json:"class"`
	Year        int    `json:"year"`
	ExamType    string `json:"exam_type"`
	Description string `json:"description"`
}

type ChatRequest struct {
	Message             string        `json:"message"`
	PaperContext        *PaperContext `json:"paperContext,omitempty"`
	ConversationHistory []ChatMessage `json:"conversationHistory,omitempty"`
}

type ChatResponse struct {
	Message string `json:"message"`
}
