// Package session owns the chat client's state: the conversation list, the
// active conversation's transcript, and the lifecycle of a single in-flight
// send.
package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Crimsonfv/ChatIA-Frond/internal/auth"
	"github.com/Crimsonfv/ChatIA-Frond/internal/filter"
	"github.com/Crimsonfv/ChatIA-Frond/internal/model"
	"github.com/Crimsonfv/ChatIA-Frond/pkg/logger"
)

// Gateway is the backend surface the controller consumes.
type Gateway interface {
	ListConversations(ctx context.Context) ([]model.Conversation, error)
	CreateConversation(ctx context.Context, title string) (*model.Conversation, error)
	GetConversation(ctx context.Context, id int64) (*model.ConversationWithMessages, error)
	DeleteConversation(ctx context.Context, id int64) error
	RenameConversation(ctx context.Context, id int64, title string) (*model.Conversation, error)
	SendMessage(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error)
	ListExcludedTerms(ctx context.Context) ([]model.ExcludedTerm, error)
	CreateExcludedTerm(ctx context.Context, term string) (*model.ExcludedTerm, error)
	DeleteExcludedTerm(ctx context.Context, id int64) error
	GetSupportingData(ctx context.Context, messageID int64) (*model.SupportingData, error)
}

// SendOperation is the transient state of the one in-flight send.
type SendOperation struct {
	// PendingID is the negative id of the optimistic user message.
	PendingID int64
	// Question is the original, unmasked question text.
	Question  string
	StartedAt time.Time
	// TargetConversationID is the conversation captured at initiation, or
	// zero when the send creates a new conversation. Reconciliation targets
	// this id regardless of what is active at completion time.
	TargetConversationID int64

	// selectionToken pins the selection state the send started under. A
	// new-conversation reconcile is discarded when it has moved on: adopting
	// the conversation then would pair its id with a foreign transcript.
	selectionToken uint64
}

// Snapshot is an immutable copy of controller state for observers.
type Snapshot struct {
	Conversations []model.Conversation
	Active        *model.Conversation
	Transcript    []model.Message
	Sending       *SendOperation
	Loading       bool
}

// Subscriber receives a snapshot after every state change.
type Subscriber func(Snapshot)

// Controller is the chat session state machine. All mutation happens under a
// single mutex; gateway calls run outside it, so conversation-management
// operations stay available while a send is outstanding.
type Controller struct {
	gw     Gateway
	filter *filter.Filter
	logger *logger.Logger
	now    func() time.Time

	mu            sync.Mutex
	conversations []model.Conversation
	active        *model.Conversation
	transcript    []model.Message
	terms         []model.ExcludedTerm
	sending       *SendOperation
	loading       bool

	pendingSeq   int64
	selectionSeq uint64

	subscribers []Subscriber
}

// New creates a controller. When creds is non-nil the controller resets
// itself whenever authentication is lost.
func New(gw Gateway, f *filter.Filter, creds *auth.CredentialStore, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Global()
	}
	c := &Controller{
		gw:     gw,
		filter: f,
		logger: log,
		now:    time.Now,
	}
	if creds != nil {
		creds.OnChange(func(authenticated bool) {
			if !authenticated {
				c.Reset()
			}
		})
	}
	return c
}

// Subscribe registers an observer notified after every state change.
func (c *Controller) Subscribe(s Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers = append(c.subscribers, s)
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) snapshotLocked() Snapshot {
	snap := Snapshot{
		Conversations: append([]model.Conversation(nil), c.conversations...),
		Transcript:    append([]model.Message(nil), c.transcript...),
		Loading:       c.loading,
	}
	if c.active != nil {
		active := *c.active
		snap.Active = &active
	}
	if c.sending != nil {
		sending := *c.sending
		snap.Sending = &sending
	}
	return snap
}

// notify delivers the current snapshot to every subscriber, outside the lock.
func (c *Controller) notify() {
	c.mu.Lock()
	snap := c.snapshotLocked()
	subs := append([]Subscriber(nil), c.subscribers...)
	c.mu.Unlock()

	for _, s := range subs {
		s(snap)
	}
}

func (c *Controller) setLoading(v bool) {
	c.mu.Lock()
	c.loading = v
	c.mu.Unlock()
	c.notify()
}

// Reset clears all session state without calling the gateway. Invoked when
// authentication is lost.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.conversations = nil
	c.active = nil
	c.transcript = nil
	c.terms = nil
	c.sending = nil
	c.loading = false
	// Invalidate outstanding selections and new-conversation reconciles so
	// an in-flight operation cannot resurrect the cleared state.
	c.selectionSeq++
	c.mu.Unlock()

	c.logger.Info("session state reset")
	c.notify()
}

// LoadConversations refreshes the conversation list from the backend.
func (c *Controller) LoadConversations(ctx context.Context) error {
	c.setLoading(true)
	defer c.setLoading(false)

	conversations, err := c.gw.ListConversations(ctx)
	if err != nil {
		c.logger.Error("failed to load conversations", zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.conversations = conversations
	c.mu.Unlock()
	c.notify()
	return nil
}

// CreateConversation creates a conversation, prepends it to the list and
// makes it active with an empty transcript. A fresh conversation is not
// fetched: it was just created, it has no messages.
func (c *Controller) CreateConversation(ctx context.Context, title string) (*model.Conversation, error) {
	c.setLoading(true)
	defer c.setLoading(false)

	conversation, err := c.gw.CreateConversation(ctx, title)
	if err != nil {
		c.logger.Error("failed to create conversation", zap.Error(err))
		return nil, err
	}

	c.mu.Lock()
	c.conversations = append([]model.Conversation{*conversation}, c.conversations...)
	active := *conversation
	c.active = &active
	c.transcript = nil
	c.selectionSeq++
	c.mu.Unlock()

	c.logger.WithConversation(conversation.ID).Info("conversation created")
	c.notify()
	return conversation, nil
}

// SelectConversation fetches a conversation with its transcript and makes it
// active. Concurrent selections race; a monotonic selection token guarantees
// a late-arriving response to a superseded call is discarded, so the active
// id and the transcript always belong together.
func (c *Controller) SelectConversation(ctx context.Context, id int64) error {
	c.mu.Lock()
	c.selectionSeq++
	token := c.selectionSeq
	c.mu.Unlock()

	c.setLoading(true)
	defer c.setLoading(false)

	conversation, err := c.gw.GetConversation(ctx, id)
	if err != nil {
		c.logger.Error("failed to select conversation",
			zap.Int64("conversation_id", id),
			zap.Error(err),
		)
		return err
	}

	c.mu.Lock()
	if token != c.selectionSeq {
		// Superseded by a later selection.
		c.mu.Unlock()
		c.logger.Debug("stale selection discarded", zap.Int64("conversation_id", id))
		return nil
	}
	active := conversation.Conversation
	c.active = &active
	c.transcript = append([]model.Message(nil), conversation.Messages...)
	c.mu.Unlock()

	c.notify()
	return nil
}

// DeleteConversation deletes a conversation and removes it from the list; if
// it was active, the active conversation and transcript are cleared.
func (c *Controller) DeleteConversation(ctx context.Context, id int64) error {
	c.setLoading(true)
	defer c.setLoading(false)

	if err := c.gw.DeleteConversation(ctx, id); err != nil {
		c.logger.Error("failed to delete conversation",
			zap.Int64("conversation_id", id),
			zap.Error(err),
		)
		return err
	}

	c.mu.Lock()
	kept := c.conversations[:0]
	for _, conv := range c.conversations {
		if conv.ID != id {
			kept = append(kept, conv)
		}
	}
	c.conversations = kept
	if c.active != nil && c.active.ID == id {
		c.active = nil
		c.transcript = nil
		c.selectionSeq++
	}
	c.mu.Unlock()

	c.logger.WithConversation(id).Info("conversation deleted")
	c.notify()
	return nil
}

// RenameConversation updates a conversation's title in place.
func (c *Controller) RenameConversation(ctx context.Context, id int64, title string) error {
	updated, err := c.gw.RenameConversation(ctx, id, title)
	if err != nil {
		c.logger.Error("failed to rename conversation",
			zap.Int64("conversation_id", id),
			zap.Error(err),
		)
		return err
	}

	c.mu.Lock()
	for i := range c.conversations {
		if c.conversations[i].ID == id {
			c.conversations[i] = *updated
		}
	}
	if c.active != nil && c.active.ID == id {
		c.active.Title = updated.Title
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// FetchSupportingData retrieves the structured data behind an assistant
// message. Pass-through; no state mutation.
func (c *Controller) FetchSupportingData(ctx context.Context, messageID int64) (*model.SupportingData, error) {
	return c.gw.GetSupportingData(ctx, messageID)
}

// ClearChat deselects the active conversation without touching the backend.
func (c *Controller) ClearChat() {
	c.mu.Lock()
	c.active = nil
	c.transcript = nil
	c.selectionSeq++
	c.mu.Unlock()
	c.notify()
}

// ConversationByID returns the listed conversation with the given id.
func (c *Controller) ConversationByID(id int64) (model.Conversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, conv := range c.conversations {
		if conv.ID == id {
			return conv, true
		}
	}
	return model.Conversation{}, false
}

// HasConversations reports whether any conversations are listed.
func (c *Controller) HasConversations() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.conversations) > 0
}

// LatestConversation returns the most recent conversation. The list is kept
// ordered most recent first.
func (c *Controller) LatestConversation() (model.Conversation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.conversations) == 0 {
		return model.Conversation{}, false
	}
	return c.conversations[0], true
}

// Stats summarizes the session for the presentation layer.
func (c *Controller) Stats() model.SessionStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return model.SessionStats{
		TotalConversations: len(c.conversations),
		TotalMessages:      len(c.transcript),
		HasActive:          c.active != nil,
		Sending:            c.sending != nil,
	}
}
