package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/paperdesk/paperdesk-be/types"
)

// AIService answers a student's question given the optional paper context and
// the bounded conversation history. Implementations are stateless per call;
// the client re-supplies history on every request.
type AIService interface {
	Chat(ctx context.Context, req *types.ChatRequest) (string, error)
}

const (
	maxHistoryTurns  = 10
	chatMaxTokens    = 1024
	chatTemperature  = 0.7
	noAnswerFallback = "Sorry, I couldn't come up with an answer to that. Try rephrasing your question."
)

const assistantPreamble = `You are a helpful study assistant for students preparing for exams. ` +
	`You help students understand question papers, explain concepts, work through solutions step by step, ` +
	`and share exam preparation tips. Stay on academic topics; if asked about something unrelated to ` +
	`studying or exams, gently steer the conversation back to the student's preparation.`

// buildSystemPrompt assembles the fixed preamble, appending a paper-specific
// paragraph only when paper context was supplied.
func buildSystemPrompt(paper *types.PaperContext) string {
	if paper == nil {
		return assistantPreamble
	}
	var b strings.Builder
	b.WriteString(assistantPreamble)
	b.WriteString("\n\nThe student is currently looking at this question paper:\n")
	fmt.Fprintf(&b, "Title: %s\n", paper.Title)
	fmt.Fprintf(&b, "Subject: %s\n", paper.Subject)
	if paper.Board != "" {
		fmt.Fprintf(&b, "Board: %s\n", paper.Board)
	}
	if paper.Class != "" {
		fmt.Fprintf(&b, "Class: %s\n", paper.Class)
	}
	if paper.Year != 0 {
		fmt.Fprintf(&b, "Year: %d\n", paper.Year)
	}
	fmt.Fprintf(&b, "Exam type: %s\n", paper.ExamType)
	if paper.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", paper.Description)
	}
	b.WriteString("Answer questions with this paper in mind.")
	return b.String()
}

// boundHistory enforces the history cap server-side; the client already
// truncates, but a misbehaving one must not inflate the upstream prompt.
func boundHistory(history []types.ChatMessage) []types.ChatMessage {
	if len(history) <= maxHistoryTurns {
		return history
	}
	return history[len(history)-maxHistoryTurns:]
}
