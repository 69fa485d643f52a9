package session

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/Crimsonfv/ChatIA-Frond/internal/filter"
	"github.com/Crimsonfv/ChatIA-Frond/internal/model"
	"github.com/Crimsonfv/ChatIA-Frond/pkg/metrics"
)

// Send runs the full send pipeline: validate, mask, optimistic insert,
// gateway call, reconcile or roll back.
//
// At most one send may be in flight; a second attempt returns ErrBusy without
// mutating anything. The transcript shows the original question text, the
// backend only ever receives the masked form. On failure the optimistic entry
// is removed and the classified error is returned wrapped in a
// SendFailedError carrying the question, so the caller can restore the input.
func (c *Controller) Send(ctx context.Context, question string) error {
	if issues := validateQuestion(question); len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}

	c.mu.Lock()
	if c.sending != nil {
		c.mu.Unlock()
		metrics.RecordSend("busy")
		return ErrBusy
	}

	masked := c.filter.Mask(question, c.terms)
	if masked != question {
		metrics.MaskedTermsTotal.Inc()
	}

	c.pendingSeq++
	pendingID := -c.pendingSeq

	var targetID int64
	var target *int64
	if c.active != nil {
		targetID = c.active.ID
		target = &targetID
	}

	// Optimistic insert happens before the network call so the transcript
	// reflects the send immediately.
	c.transcript = append(c.transcript, model.Message{
		ID:             pendingID,
		ConversationID: targetID,
		Role:           model.RoleUser,
		Content:        question,
		Timestamp:      c.now(),
	})
	op := &SendOperation{
		PendingID:            pendingID,
		Question:             question,
		StartedAt:            c.now(),
		TargetConversationID: targetID,
		selectionToken:       c.selectionSeq,
	}
	c.sending = op
	c.mu.Unlock()

	metrics.SendInFlight.Set(1)
	c.notify()

	resp, err := c.gw.SendMessage(ctx, masked, target)
	if err != nil {
		c.rollback(pendingID)
		metrics.RecordSend("failure")
		metrics.SendInFlight.Set(0)
		c.logger.Warn("send failed, optimistic message rolled back",
			zap.Int64("pending_id", pendingID),
			zap.Error(err),
		)
		c.notify()
		return &SendFailedError{Question: question, Err: err}
	}

	c.reconcile(ctx, op, resp)
	metrics.RecordSend("success")
	metrics.SendInFlight.Set(0)
	c.notify()
	return nil
}

// rollback removes the single transcript entry carrying the pending id and
// clears the send operation. Nothing else is touched.
func (c *Controller) rollback(pendingID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	metrics.RollbacksTotal.Inc()
	for i, msg := range c.transcript {
		if msg.ID == pendingID {
			c.transcript = append(c.transcript[:i], c.transcript[i+1:]...)
			break
		}
	}
	c.sending = nil
}

// reconcile applies a successful send outcome. It targets the conversation
// captured at initiation, not whatever is active now: a send that outlives a
// conversation switch resolves against its original target so the response is
// never misattributed.
func (c *Controller) reconcile(ctx context.Context, op *SendOperation, resp *model.ChatResponse) {
	if op.TargetConversationID == 0 {
		c.reconcileNewConversation(ctx, op, resp)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for i := range c.conversations {
		if c.conversations[i].ID == op.TargetConversationID {
			c.conversations[i].LastActivityAt = now
		}
	}

	if c.active != nil && c.active.ID == op.TargetConversationID {
		c.active.LastActivityAt = now
		c.transcript = append(c.transcript, model.Message{
			ID:              resp.MessageID,
			ConversationID:  resp.ConversationID,
			Role:            model.RoleAssistant,
			Content:         resp.Answer,
			SupportingQuery: resp.SupportingQuery,
			Timestamp:       now,
		})
	} else {
		// The user switched away mid-send. The response is already persisted
		// server-side and will appear when its conversation is selected.
		c.logger.Info("send completed for a conversation that is no longer active",
			zap.Int64("conversation_id", op.TargetConversationID),
		)
	}

	c.sending = nil
}

// reconcileNewConversation handles a send that created its conversation:
// refresh the list, adopt the new conversation as active, and rewrite every
// placeholder conversation id in the transcript to the server-assigned one.
func (c *Controller) reconcileNewConversation(ctx context.Context, op *SendOperation, resp *model.ChatResponse) {
	conversations, err := c.gw.ListConversations(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if op.selectionToken != c.selectionSeq {
		// The user selected elsewhere, or the session reset, while the send
		// was in flight. The conversation is persisted server-side and will
		// appear on the next list load; nothing here may be adopted.
		c.sending = nil
		c.logger.Info("send created a conversation that was superseded mid-flight",
			zap.Int64("conversation_id", resp.ConversationID),
		)
		return
	}

	now := c.now()

	var active model.Conversation
	if err == nil {
		c.conversations = conversations
		found := false
		for _, conv := range conversations {
			if conv.ID == resp.ConversationID {
				active = conv
				found = true
				break
			}
		}
		if !found {
			active = constructConversation(op, resp, now)
			c.conversations = append([]model.Conversation{active}, c.conversations...)
		}
	} else {
		// List refresh is best effort; construct the conversation locally.
		c.logger.Warn("failed to refresh conversations after send", zap.Error(err))
		active = constructConversation(op, resp, now)
		c.conversations = append([]model.Conversation{active}, c.conversations...)
	}
	active.LastActivityAt = now
	c.active = &active
	c.selectionSeq++

	for i := range c.transcript {
		if c.transcript[i].ConversationID == 0 {
			c.transcript[i].ConversationID = resp.ConversationID
		}
	}
	c.transcript = append(c.transcript, model.Message{
		ID:              resp.MessageID,
		ConversationID:  resp.ConversationID,
		Role:            model.RoleAssistant,
		Content:         resp.Answer,
		SupportingQuery: resp.SupportingQuery,
		Timestamp:       now,
	})

	c.sending = nil
	c.logger.WithConversation(resp.ConversationID).Info("conversation created by first send")
}

func constructConversation(op *SendOperation, resp *model.ChatResponse, now time.Time) model.Conversation {
	return model.Conversation{
		ID:             resp.ConversationID,
		Title:          DeriveTitle(op.Question),
		CreatedAt:      now,
		LastActivityAt: now,
		Active:         true,
	}
}

// validateQuestion checks a question before anything is mutated or sent.
// Every violation is reported.
func validateQuestion(question string) []filter.Issue {
	var issues []filter.Issue

	trimmed := strings.TrimSpace(question)
	if trimmed == "" {
		return append(issues, filter.Issue{
			Code:    filter.IssueEmpty,
			Message: "message cannot be empty",
		})
	}
	if utf8.RuneCountInString(trimmed) < MinQuestionLength {
		issues = append(issues, filter.Issue{
			Code:    filter.IssueTooShort,
			Message: "message must have at least 3 characters",
		})
	}
	if utf8.RuneCountInString(question) > MaxQuestionLength {
		issues = append(issues, filter.Issue{
			Code:    filter.IssueTooLong,
			Message: "message cannot exceed 1000 characters",
		})
	}
	return issues
}
