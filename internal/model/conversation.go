// Package model defines data structures exchanged with the chat backend.
package model

import (
	"time"
)

// Conversation represents a conversation thread as returned by the backend.
type Conversation struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"id_usuario"`
	Title          string    `json:"titulo,omitempty"`
	CreatedAt      time.Time `json:"fecha_inicio"`
	LastActivityAt time.Time `json:"fecha_ultima_actividad"`
	Active         bool      `json:"activa"`
}

// ConversationWithMessages is a conversation together with its full transcript.
type ConversationWithMessages struct {
	Conversation
	Messages []Message `json:"mensajes"`
}

// CreateConversationRequest is the request to create a new conversation.
type CreateConversationRequest struct {
	Title string `json:"titulo,omitempty"`
}

// SessionStats summarizes session state for the presentation layer.
type SessionStats struct {
	TotalConversations int  `json:"total_conversations"`
	TotalMessages      int  `json:"total_messages"`
	HasActive          bool `json:"has_active"`
	Sending            bool `json:"sending"`
}
