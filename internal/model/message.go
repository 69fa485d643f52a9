package model

import (
	"strings"
	"time"
)

// Role represents the role of a message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message represents a transcript message.
//
// Server-assigned ids are positive. A message inserted optimistically before
// the backend confirms it carries a negative, client-generated pending id;
// pending ids never leave the client. A pending message created before its
// conversation exists carries ConversationID 0 until reconciliation.
type Message struct {
	ID              int64     `json:"id"`
	ConversationID  int64     `json:"id_conversacion"`
	Role            Role      `json:"rol"`
	Content         string    `json:"contenido"`
	SupportingQuery string    `json:"consulta_sql,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// Pending reports whether the message is still a client-only optimistic entry.
func (m Message) Pending() bool {
	return m.ID < 0
}

// HasSupportingData reports whether supporting data can be fetched for the
// message.
func (m Message) HasSupportingData() bool {
	return strings.TrimSpace(m.SupportingQuery) != ""
}

// ChatRequest is the payload for sending a question to the assistant.
// ConversationID is omitted to start a new conversation.
type ChatRequest struct {
	Question       string `json:"pregunta"`
	ConversationID *int64 `json:"id_conversacion,omitempty"`
}

// ChatResponse is the backend's answer to a ChatRequest.
type ChatResponse struct {
	Answer          string `json:"respuesta"`
	SupportingQuery string `json:"consulta_sql,omitempty"`
	ConversationID  int64  `json:"id_conversacion"`
	MessageID       int64  `json:"id_mensaje"`
}

// SupportingData carries the structured data behind an assistant answer.
type SupportingData struct {
	TotalCount      int              `json:"total_resultados"`
	SampleRows      []map[string]any `json:"muestra_datos"`
	QueryDescriptor string           `json:"sql_ejecutado"`
}
