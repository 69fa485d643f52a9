package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Crimsonfv/ChatIA-Frond/internal/model"
)

// ListConversations retrieves the user's conversations, most recent first.
func (c *Client) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	query := url.Values{}
	query.Set("skip", "0")
	query.Set("limit", "100")

	var conversations []model.Conversation
	if err := c.call(ctx, "list_conversations", http.MethodGet, "/conversations", query, nil, &conversations, Fast); err != nil {
		return nil, err
	}
	return conversations, nil
}

// CreateConversation creates a new conversation, optionally titled.
func (c *Client) CreateConversation(ctx context.Context, title string) (*model.Conversation, error) {
	req := model.CreateConversationRequest{Title: title}

	var conversation model.Conversation
	if err := c.call(ctx, "create_conversation", http.MethodPost, "/conversations", nil, &req, &conversation, Standard); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// GetConversation retrieves a conversation together with its transcript.
func (c *Client) GetConversation(ctx context.Context, id int64) (*model.ConversationWithMessages, error) {
	var conversation model.ConversationWithMessages
	path := fmt.Sprintf("/conversations/%d", id)
	if err := c.call(ctx, "get_conversation", http.MethodGet, path, nil, nil, &conversation, Standard); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// DeleteConversation deletes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/conversations/%d", id)
	return c.call(ctx, "delete_conversation", http.MethodDelete, path, nil, nil, nil, Standard)
}

// RenameConversation updates a conversation's title.
func (c *Client) RenameConversation(ctx context.Context, id int64, title string) (*model.Conversation, error) {
	query := url.Values{}
	query.Set("nuevo_titulo", title)

	var conversation model.Conversation
	path := fmt.Sprintf("/conversations/%d/title", id)
	if err := c.call(ctx, "rename_conversation", http.MethodPut, path, query, nil, &conversation, Standard); err != nil {
		return nil, err
	}
	return &conversation, nil
}

// SendMessage sends a question to the assistant. A nil conversationID asks
// the backend to start a new conversation.
func (c *Client) SendMessage(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
	req := model.ChatRequest{Question: question, ConversationID: conversationID}

	var resp model.ChatResponse
	if err := c.call(ctx, "send_message", http.MethodPost, "/chat", nil, &req, &resp, Extended); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListExcludedTerms retrieves the user's excluded terms.
func (c *Client) ListExcludedTerms(ctx context.Context) ([]model.ExcludedTerm, error) {
	var terms []model.ExcludedTerm
	if err := c.call(ctx, "list_excluded_terms", http.MethodGet, "/filters/excluded-terms", nil, nil, &terms, Fast); err != nil {
		return nil, err
	}
	return terms, nil
}

// CreateExcludedTerm adds a term to the user's exclusion list.
func (c *Client) CreateExcludedTerm(ctx context.Context, term string) (*model.ExcludedTerm, error) {
	req := model.CreateExcludedTermRequest{Term: term}

	var created model.ExcludedTerm
	if err := c.call(ctx, "create_excluded_term", http.MethodPost, "/filters/excluded-terms", nil, &req, &created, Standard); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteExcludedTerm removes a term from the user's exclusion list.
func (c *Client) DeleteExcludedTerm(ctx context.Context, id int64) error {
	path := "/filters/excluded-terms/" + strconv.FormatInt(id, 10)
	return c.call(ctx, "delete_excluded_term", http.MethodDelete, path, nil, nil, nil, Standard)
}

// GetSupportingData retrieves the structured data behind an assistant
// message.
func (c *Client) GetSupportingData(ctx context.Context, messageID int64) (*model.SupportingData, error) {
	var data model.SupportingData
	path := "/data/details/" + strconv.FormatInt(messageID, 10)
	if err := c.call(ctx, "get_supporting_data", http.MethodGet, path, nil, nil, &data, Standard); err != nil {
		return nil, err
	}
	return &data, nil
}
