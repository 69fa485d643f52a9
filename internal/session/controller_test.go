package session_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Crimsonfv/ChatIA-Frond/internal/auth"
	"github.com/Crimsonfv/ChatIA-Frond/internal/filter"
	"github.com/Crimsonfv/ChatIA-Frond/internal/gateway"
	"github.com/Crimsonfv/ChatIA-Frond/internal/model"
	"github.com/Crimsonfv/ChatIA-Frond/internal/session"
	"github.com/Crimsonfv/ChatIA-Frond/pkg/logger"
)

// fakeGateway implements session.Gateway with overridable behavior per test.
type fakeGateway struct {
	mu        sync.Mutex
	sendCalls int

	listConversations func(ctx context.Context) ([]model.Conversation, error)
	createConv        func(ctx context.Context, title string) (*model.Conversation, error)
	getConv           func(ctx context.Context, id int64) (*model.ConversationWithMessages, error)
	deleteConv        func(ctx context.Context, id int64) error
	renameConv        func(ctx context.Context, id int64, title string) (*model.Conversation, error)
	send              func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error)
	listTerms         func(ctx context.Context) ([]model.ExcludedTerm, error)
	createTerm        func(ctx context.Context, term string) (*model.ExcludedTerm, error)
	deleteTerm        func(ctx context.Context, id int64) error
	supportingData    func(ctx context.Context, messageID int64) (*model.SupportingData, error)
}

func (f *fakeGateway) ListConversations(ctx context.Context) ([]model.Conversation, error) {
	if f.listConversations != nil {
		return f.listConversations(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) CreateConversation(ctx context.Context, title string) (*model.Conversation, error) {
	if f.createConv != nil {
		return f.createConv(ctx, title)
	}
	return &model.Conversation{ID: 1, Title: title, Active: true}, nil
}

func (f *fakeGateway) GetConversation(ctx context.Context, id int64) (*model.ConversationWithMessages, error) {
	if f.getConv != nil {
		return f.getConv(ctx, id)
	}
	return &model.ConversationWithMessages{Conversation: model.Conversation{ID: id, Active: true}}, nil
}

func (f *fakeGateway) DeleteConversation(ctx context.Context, id int64) error {
	if f.deleteConv != nil {
		return f.deleteConv(ctx, id)
	}
	return nil
}

func (f *fakeGateway) RenameConversation(ctx context.Context, id int64, title string) (*model.Conversation, error) {
	if f.renameConv != nil {
		return f.renameConv(ctx, id, title)
	}
	return &model.Conversation{ID: id, Title: title, Active: true}, nil
}

func (f *fakeGateway) SendMessage(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
	f.mu.Lock()
	f.sendCalls++
	f.mu.Unlock()
	if f.send != nil {
		return f.send(ctx, question, conversationID)
	}
	return &model.ChatResponse{Answer: "ok", ConversationID: 1, MessageID: 100}, nil
}

func (f *fakeGateway) ListExcludedTerms(ctx context.Context) ([]model.ExcludedTerm, error) {
	if f.listTerms != nil {
		return f.listTerms(ctx)
	}
	return nil, nil
}

func (f *fakeGateway) CreateExcludedTerm(ctx context.Context, term string) (*model.ExcludedTerm, error) {
	if f.createTerm != nil {
		return f.createTerm(ctx, term)
	}
	return &model.ExcludedTerm{ID: 1, Term: term, Active: true}, nil
}

func (f *fakeGateway) DeleteExcludedTerm(ctx context.Context, id int64) error {
	if f.deleteTerm != nil {
		return f.deleteTerm(ctx, id)
	}
	return nil
}

func (f *fakeGateway) GetSupportingData(ctx context.Context, messageID int64) (*model.SupportingData, error) {
	if f.supportingData != nil {
		return f.supportingData(ctx, messageID)
	}
	return &model.SupportingData{}, nil
}

func (f *fakeGateway) sends() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sendCalls
}

func newController(gw *fakeGateway) *session.Controller {
	return session.New(gw, filter.New(), nil, logger.NewNop())
}

func TestSendIntoNewConversation(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		send: func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
			require.Nil(t, conversationID, "a send without an active conversation targets a new one")
			return &model.ChatResponse{
				Answer:         "Japan won 27 gold medals.",
				ConversationID: 42,
				MessageID:      7,
			}, nil
		},
		listConversations: func(ctx context.Context) ([]model.Conversation, error) {
			return []model.Conversation{{ID: 42, Title: "How many gold medals", Active: true}}, nil
		},
	}
	ctrl := newController(gw)

	require.NoError(t, ctrl.Send(ctx, "How many gold medals did Japan win?"))

	snap := ctrl.Snapshot()
	require.NotNil(t, snap.Active)
	assert.EqualValues(t, 42, snap.Active.ID)
	require.Len(t, snap.Transcript, 2)

	user := snap.Transcript[0]
	assert.Equal(t, model.RoleUser, user.Role)
	assert.Negative(t, user.ID, "optimistic user message keeps its pending id")
	assert.EqualValues(t, 42, user.ConversationID, "placeholder conversation id is rewritten")
	assert.Equal(t, "How many gold medals did Japan win?", user.Content)

	assistant := snap.Transcript[1]
	assert.Equal(t, model.RoleAssistant, assistant.Role)
	assert.EqualValues(t, 7, assistant.ID)
	assert.Equal(t, "Japan won 27 gold medals.", assistant.Content)

	assert.Nil(t, snap.Sending)
}

func TestSendMasksOutboundButDisplaysOriginal(t *testing.T) {
	ctx := context.Background()

	var outbound string
	gw := &fakeGateway{
		listTerms: func(ctx context.Context) ([]model.ExcludedTerm, error) {
			return []model.ExcludedTerm{{ID: 1, Term: "brazil", Active: true}}, nil
		},
		send: func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
			outbound = question
			return &model.ChatResponse{Answer: "ok", ConversationID: 1, MessageID: 2}, nil
		},
	}
	ctrl := newController(gw)
	require.NoError(t, ctrl.LoadExcludedTerms(ctx))

	require.NoError(t, ctrl.Send(ctx, "Tell me about Brazil's medals"))

	assert.Equal(t, "Tell me about ******'s medals", outbound)

	snap := ctrl.Snapshot()
	require.NotEmpty(t, snap.Transcript)
	assert.Equal(t, "Tell me about Brazil's medals", snap.Transcript[0].Content,
		"the transcript shows the original text; masking applies only to the outbound payload")
}

func TestSendOrderingAcrossMultipleSends(t *testing.T) {
	ctx := context.Background()

	var msgID int64
	gw := &fakeGateway{
		send: func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
			msgID++
			return &model.ChatResponse{Answer: "answer " + question, ConversationID: 1, MessageID: 100 + msgID}, nil
		},
		listConversations: func(ctx context.Context) ([]model.Conversation, error) {
			return []model.Conversation{{ID: 1, Active: true}}, nil
		},
	}
	ctrl := newController(gw)

	require.NoError(t, ctrl.Send(ctx, "first question"))
	require.NoError(t, ctrl.Send(ctx, "second question"))
	require.NoError(t, ctrl.Send(ctx, "third question"))

	snap := ctrl.Snapshot()
	require.Len(t, snap.Transcript, 6)
	for i := 0; i < 6; i += 2 {
		assert.Equal(t, model.RoleUser, snap.Transcript[i].Role)
		assert.Equal(t, model.RoleAssistant, snap.Transcript[i+1].Role)
	}
	assert.Equal(t, "first question", snap.Transcript[0].Content)
	assert.Equal(t, "second question", snap.Transcript[2].Content)
	assert.Equal(t, "third question", snap.Transcript[4].Content)
}

func TestSendBusyRejection(t *testing.T) {
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{
		send: func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
			close(entered)
			<-release
			return &model.ChatResponse{Answer: "ok", ConversationID: 1, MessageID: 1}, nil
		},
		listConversations: func(ctx context.Context) ([]model.Conversation, error) {
			return []model.Conversation{{ID: 1, Active: true}}, nil
		},
	}
	ctrl := newController(gw)

	done := make(chan error, 1)
	go func() { done <- ctrl.Send(ctx, "a slow question") }()
	<-entered

	err := ctrl.Send(ctx, "an impatient question")
	assert.ErrorIs(t, err, session.ErrBusy)

	snap := ctrl.Snapshot()
	pending := 0
	for _, msg := range snap.Transcript {
		if msg.Pending() {
			pending++
		}
	}
	assert.Equal(t, 1, pending, "the rejected send must not append a second pending message")

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gw.sends(), "the rejected send must not reach the gateway")
}

func TestSendRollbackOnFailure(t *testing.T) {
	ctx := context.Background()

	gw := &fakeGateway{}
	ctrl := newController(gw)

	// Establish an active conversation with history.
	gw.getConv = func(ctx context.Context, id int64) (*model.ConversationWithMessages, error) {
		return &model.ConversationWithMessages{
			Conversation: model.Conversation{ID: id, Active: true},
			Messages: []model.Message{
				{ID: 1, ConversationID: id, Role: model.RoleUser, Content: "earlier question"},
				{ID: 2, ConversationID: id, Role: model.RoleAssistant, Content: "earlier answer"},
			},
		}, nil
	}
	require.NoError(t, ctrl.SelectConversation(ctx, 5))
	before := ctrl.Snapshot().Transcript

	gw.send = func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
		return nil, &gateway.Error{Kind: gateway.KindTimeout, Operation: "send_message"}
	}

	err := ctrl.Send(ctx, "a question that times out")
	require.Error(t, err)

	var failed *session.SendFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, "a question that times out", failed.Question,
		"the failed send carries the question so the input can be restored")
	assert.True(t, gateway.IsKind(err, gateway.KindTimeout))

	after := ctrl.Snapshot()
	assert.Equal(t, before, after.Transcript, "rollback restores the transcript element-for-element")
	assert.Nil(t, after.Sending)
}

func TestSendValidation(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	ctrl := newController(gw)

	tests := []struct {
		name     string
		question string
		code     filter.IssueCode
	}{
		{"empty", "", filter.IssueEmpty},
		{"blank", "   ", filter.IssueEmpty},
		{"too short", "hi", filter.IssueTooShort},
		{"too long", strings.Repeat("a", 1001), filter.IssueTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ctrl.Send(ctx, tt.question)
			var validation *session.ValidationError
			require.ErrorAs(t, err, &validation)
			require.NotEmpty(t, validation.Issues)
			assert.Equal(t, tt.code, validation.Issues[0].Code)
		})
	}

	assert.Empty(t, ctrl.Snapshot().Transcript, "validation failures mutate nothing")
	assert.Equal(t, 0, gw.sends())
}

func TestSendTargetsConversationCapturedAtStart(t *testing.T) {
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{
		send: func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
			require.NotNil(t, conversationID)
			require.EqualValues(t, 1, *conversationID)
			close(entered)
			<-release
			return &model.ChatResponse{Answer: "late answer", ConversationID: 1, MessageID: 9}, nil
		},
	}
	ctrl := newController(gw)
	require.NoError(t, ctrl.SelectConversation(ctx, 1))

	done := make(chan error, 1)
	go func() { done <- ctrl.Send(ctx, "question for conversation one") }()
	<-entered

	// Switching conversations does not cancel the in-flight send.
	require.NoError(t, ctrl.SelectConversation(ctx, 2))

	close(release)
	require.NoError(t, <-done)

	snap := ctrl.Snapshot()
	require.NotNil(t, snap.Active)
	assert.EqualValues(t, 2, snap.Active.ID)
	for _, msg := range snap.Transcript {
		assert.NotEqual(t, "late answer", msg.Content,
			"a response for a no-longer-active conversation is not spliced into the current transcript")
	}
	assert.Nil(t, snap.Sending)
}

func TestNewConversationSendSupersededBySelection(t *testing.T) {
	ctx := context.Background()

	entered := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{
		send: func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
			require.Nil(t, conversationID)
			close(entered)
			<-release
			return &model.ChatResponse{Answer: "late answer", ConversationID: 42, MessageID: 9}, nil
		},
		listConversations: func(ctx context.Context) ([]model.Conversation, error) {
			return []model.Conversation{
				{ID: 42, Title: "late", Active: true},
				{ID: 5, Title: "chosen", Active: true},
			}, nil
		},
		getConv: func(ctx context.Context, id int64) (*model.ConversationWithMessages, error) {
			return &model.ConversationWithMessages{
				Conversation: model.Conversation{ID: id, Title: "chosen", Active: true},
				Messages: []model.Message{
					{ID: 51, ConversationID: id, Role: model.RoleUser, Content: "question in the chosen conversation"},
				},
			}, nil
		},
	}
	ctrl := newController(gw)

	done := make(chan error, 1)
	go func() { done <- ctrl.Send(ctx, "question for a brand new conversation") }()
	<-entered

	// The user moves to another conversation while the send is creating one.
	require.NoError(t, ctrl.SelectConversation(ctx, 5))

	close(release)
	require.NoError(t, <-done)

	snap := ctrl.Snapshot()
	require.NotNil(t, snap.Active)
	assert.EqualValues(t, 5, snap.Active.ID,
		"the conversation created mid-flight must not displace the user's selection")
	require.Len(t, snap.Transcript, 1)
	assert.EqualValues(t, 5, snap.Transcript[0].ConversationID,
		"active id and transcript always belong together")
	for _, msg := range snap.Transcript {
		assert.NotEqual(t, "late answer", msg.Content)
	}
	assert.Nil(t, snap.Sending)
}

func TestNewConversationSendDoesNotSurviveReset(t *testing.T) {
	ctx := context.Background()
	creds := auth.NewCredentialStore()
	creds.SetToken("opaque-token")

	entered := make(chan struct{})
	release := make(chan struct{})
	gw := &fakeGateway{
		send: func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
			close(entered)
			<-release
			return &model.ChatResponse{Answer: "late answer", ConversationID: 42, MessageID: 9}, nil
		},
		listConversations: func(ctx context.Context) ([]model.Conversation, error) {
			return []model.Conversation{{ID: 42, Active: true}}, nil
		},
	}
	ctrl := session.New(gw, filter.New(), creds, logger.NewNop())

	done := make(chan error, 1)
	go func() { done <- ctrl.Send(ctx, "question while signing out") }()
	<-entered

	creds.Clear()

	close(release)
	require.NoError(t, <-done)

	snap := ctrl.Snapshot()
	assert.Empty(t, snap.Conversations, "a signed-out session stays cleared")
	assert.Nil(t, snap.Active)
	assert.Empty(t, snap.Transcript)
	assert.Nil(t, snap.Sending)
}

func TestNilLoggerDefaultsToGlobal(t *testing.T) {
	ctrl := session.New(&fakeGateway{}, filter.New(), nil, nil)
	require.NoError(t, ctrl.Send(context.Background(), "a perfectly ordinary question"))
}

func TestCreateConversationStartsEmptyAndActive(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		createConv: func(ctx context.Context, title string) (*model.Conversation, error) {
			return &model.Conversation{ID: 10, Title: title, Active: true}, nil
		},
	}
	ctrl := newController(gw)

	conv, err := ctrl.CreateConversation(ctx, "medals")
	require.NoError(t, err)
	assert.EqualValues(t, 10, conv.ID)

	snap := ctrl.Snapshot()
	require.NotNil(t, snap.Active)
	assert.EqualValues(t, 10, snap.Active.ID)
	assert.Empty(t, snap.Transcript, "a fresh conversation starts with an empty transcript")
	require.Len(t, snap.Conversations, 1)
}

func TestSelectConversationStalenessGuard(t *testing.T) {
	ctx := context.Background()

	firstEntered := make(chan struct{})
	releaseFirst := make(chan struct{})
	gw := &fakeGateway{}
	gw.getConv = func(ctx context.Context, id int64) (*model.ConversationWithMessages, error) {
		if id == 1 {
			close(firstEntered)
			<-releaseFirst
		}
		return &model.ConversationWithMessages{
			Conversation: model.Conversation{ID: id, Active: true},
			Messages: []model.Message{
				{ID: id * 10, ConversationID: id, Role: model.RoleUser, Content: "hello"},
			},
		}, nil
	}
	ctrl := newController(gw)

	done := make(chan error, 1)
	go func() { done <- ctrl.SelectConversation(ctx, 1) }()
	<-firstEntered

	require.NoError(t, ctrl.SelectConversation(ctx, 2))

	close(releaseFirst)
	require.NoError(t, <-done)

	snap := ctrl.Snapshot()
	require.NotNil(t, snap.Active)
	assert.EqualValues(t, 2, snap.Active.ID, "the late response to the superseded selection is discarded")
	require.Len(t, snap.Transcript, 1)
	assert.EqualValues(t, 2, snap.Transcript[0].ConversationID,
		"active id and transcript always belong together")
}

func TestDeleteConversationClearsActive(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{}
	ctrl := newController(gw)

	require.NoError(t, ctrl.SelectConversation(ctx, 3))
	require.NoError(t, ctrl.DeleteConversation(ctx, 3))

	snap := ctrl.Snapshot()
	assert.Nil(t, snap.Active)
	assert.Empty(t, snap.Transcript)
}

func TestRenameConversationUpdatesListAndActive(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		listConversations: func(ctx context.Context) ([]model.Conversation, error) {
			return []model.Conversation{{ID: 1, Title: "old", Active: true}}, nil
		},
	}
	ctrl := newController(gw)
	require.NoError(t, ctrl.LoadConversations(ctx))
	require.NoError(t, ctrl.SelectConversation(ctx, 1))

	require.NoError(t, ctrl.RenameConversation(ctx, 1, "new title"))

	snap := ctrl.Snapshot()
	assert.Equal(t, "new title", snap.Conversations[0].Title)
	require.NotNil(t, snap.Active)
	assert.Equal(t, "new title", snap.Active.Title)
}

func TestResetOnAuthenticationLoss(t *testing.T) {
	ctx := context.Background()
	creds := auth.NewCredentialStore()
	creds.SetToken("opaque-token")

	gw := &fakeGateway{
		listConversations: func(ctx context.Context) ([]model.Conversation, error) {
			return []model.Conversation{{ID: 1, Active: true}}, nil
		},
	}
	ctrl := session.New(gw, filter.New(), creds, logger.NewNop())
	require.NoError(t, ctrl.LoadConversations(ctx))
	require.NoError(t, ctrl.SelectConversation(ctx, 1))
	require.True(t, ctrl.HasConversations())

	creds.Clear()

	snap := ctrl.Snapshot()
	assert.Empty(t, snap.Conversations)
	assert.Nil(t, snap.Active)
	assert.Empty(t, snap.Transcript)
	assert.Nil(t, snap.Sending)
}

func TestAddExcludedTermRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		listTerms: func(ctx context.Context) ([]model.ExcludedTerm, error) {
			return []model.ExcludedTerm{{ID: 1, Term: "brazil", Active: false}}, nil
		},
	}
	ctrl := newController(gw)
	require.NoError(t, ctrl.LoadExcludedTerms(ctx))

	_, err := ctrl.AddExcludedTerm(ctx, "  BRAZIL ")
	assert.ErrorIs(t, err, session.ErrTermExists,
		"a soft-disabled term cannot be re-added under a different casing")

	_, err = ctrl.AddExcludedTerm(ctx, "x<y")
	var validation *session.ValidationError
	assert.ErrorAs(t, err, &validation)

	created, err := ctrl.AddExcludedTerm(ctx, "  Gold   Medal ")
	require.NoError(t, err)
	assert.Equal(t, "gold medal", created.Term, "terms are normalized before create")
	require.Len(t, ctrl.ExcludedTerms(), 2)
}

func TestRemoveExcludedTerm(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		listTerms: func(ctx context.Context) ([]model.ExcludedTerm, error) {
			return []model.ExcludedTerm{
				{ID: 1, Term: "brazil", Active: true},
				{ID: 2, Term: "gold", Active: true},
			}, nil
		},
	}
	ctrl := newController(gw)
	require.NoError(t, ctrl.LoadExcludedTerms(ctx))

	require.NoError(t, ctrl.RemoveExcludedTerm(ctx, 1))

	remaining := ctrl.ExcludedTerms()
	require.Len(t, remaining, 1)
	assert.Equal(t, "gold", remaining[0].Term)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		listConversations: func(ctx context.Context) ([]model.Conversation, error) {
			return []model.Conversation{{ID: 1, Active: true}}, nil
		},
	}
	ctrl := newController(gw)

	var mu sync.Mutex
	var latest session.Snapshot
	ctrl.Subscribe(func(s session.Snapshot) {
		mu.Lock()
		latest = s
		mu.Unlock()
	})

	require.NoError(t, ctrl.LoadConversations(ctx))

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, latest.Conversations, 1)
}

func TestPendingIDsAreDistinctNegative(t *testing.T) {
	ctx := context.Background()

	var seen []int64
	gw := &fakeGateway{
		send: func(ctx context.Context, question string, conversationID *int64) (*model.ChatResponse, error) {
			return nil, errors.New("boom")
		},
	}
	ctrl := newController(gw)
	require.NoError(t, ctrl.SelectConversation(ctx, 1))

	var pendingMu sync.Mutex
	ctrl.Subscribe(func(s session.Snapshot) {
		pendingMu.Lock()
		defer pendingMu.Unlock()
		if s.Sending != nil {
			seen = append(seen, s.Sending.PendingID)
		}
	})

	for i := 0; i < 3; i++ {
		_ = ctrl.Send(ctx, "another question")
	}

	pendingMu.Lock()
	defer pendingMu.Unlock()
	require.Len(t, seen, 3)
	distinct := map[int64]bool{}
	for _, id := range seen {
		assert.Negative(t, id)
		distinct[id] = true
	}
	assert.Len(t, distinct, 3)

	// Failed sends leave the transcript as selected.
	assert.Empty(t, ctrl.Snapshot().Transcript)
}

func TestStatsAndHelpers(t *testing.T) {
	ctx := context.Background()
	gw := &fakeGateway{
		listConversations: func(ctx context.Context) ([]model.Conversation, error) {
			return []model.Conversation{
				{ID: 2, Title: "newest", Active: true},
				{ID: 1, Title: "older", Active: true},
			}, nil
		},
	}
	ctrl := newController(gw)
	require.NoError(t, ctrl.LoadConversations(ctx))

	latest, ok := ctrl.LatestConversation()
	require.True(t, ok)
	assert.EqualValues(t, 2, latest.ID)

	conv, ok := ctrl.ConversationByID(1)
	require.True(t, ok)
	assert.Equal(t, "older", conv.Title)

	_, ok = ctrl.ConversationByID(99)
	assert.False(t, ok)

	stats := ctrl.Stats()
	assert.Equal(t, 2, stats.TotalConversations)
	assert.False(t, stats.Sending)
	assert.False(t, stats.HasActive)

	ctrl.ClearChat()
	assert.False(t, ctrl.Stats().HasActive)
}
