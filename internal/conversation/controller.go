// Package conversation owns the chat thread of one session: the ordered
// messages, the draft input and the single in-flight request guard.
//
// A submission runs in two steps. Submit validates the input and records the
// user message synchronously; the returned Exchange performs the network call
// and settles the thread. The UI calls Submit on its own goroutine and runs the
// Exchange on a worker, so the draft is cleared before any response arrives.
package conversation

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	apierrors "github.com/diogo/hotmess/internal/errors"
	"github.com/diogo/hotmess/internal/models"
)

// Sender delivers one user message to the backend.
// found is false when the backend answered without any reply text.
type Sender interface {
	Send(ctx context.Context, text string) (reply string, found bool, err error)
}

// SenderFunc adapts a function to the Sender interface
type SenderFunc func(ctx context.Context, text string) (string, bool, error)

// Send calls f(ctx, text)
func (f SenderFunc) Send(ctx context.Context, text string) (string, bool, error) {
	return f(ctx, text)
}

// State is a read-only snapshot used for rendering
type State struct {
	Messages []models.Message
	Pending  bool
	Draft    string
}

// Controller maintains the conversation and the pending flag
type Controller struct {
	sender Sender
	logger *log.Logger

	mu       sync.Mutex
	messages []models.Message
	pending  bool
	draft    string
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger sets the logger used for failure diagnostics
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithGreeting replaces the seeded assistant greeting
func WithGreeting(greeting string) Option {
	return func(c *Controller) {
		c.messages = []models.Message{{Role: models.RoleAssistant, Content: greeting}}
	}
}

// New creates a Controller seeded with the coach's greeting
func New(sender Sender, opts ...Option) *Controller {
	c := &Controller{
		sender:   sender,
		logger:   log.New(io.Discard, "", 0),
		messages: []models.Message{{Role: models.RoleAssistant, Content: models.Greeting}},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDraft records the text currently typed by the user
func (c *Controller) SetDraft(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = text
}

// Submit starts a request cycle for text.
//
// It returns false, and changes nothing, when the trimmed text is empty or a
// request is already in flight. Otherwise the user message is appended, the
// draft cleared and the pending flag set before Submit returns.
func (c *Controller) Submit(text string) (*Exchange, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending {
		return nil, false
	}

	c.messages = append(c.messages, models.Message{Role: models.RoleUser, Content: text})
	c.draft = ""
	c.pending = true

	return &Exchange{controller: c, text: text}, true
}

// Ask submits text and waits for the reply.
func (c *Controller) Ask(ctx context.Context, text string) (models.Message, bool) {
	exchange, ok := c.Submit(text)
	if !ok {
		return models.Message{}, false
	}
	return exchange.Run(ctx), true
}

// ViewState returns a snapshot of the conversation for rendering
func (c *Controller) ViewState() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]models.Message, len(c.messages))
	copy(messages, c.messages)

	return State{
		Messages: messages,
		Pending:  c.pending,
		Draft:    c.draft,
	}
}

// Pending reports whether a request is in flight
func (c *Controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pending
}

// Len returns the number of messages in the thread
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

// LastReply returns the most recent assistant message
func (c *Controller) LastReply() (models.Message, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := len(c.messages) - 1; i >= 0; i-- {
		if c.messages[i].Role == models.RoleAssistant {
			return c.messages[i], true
		}
	}
	return models.Message{}, false
}

// settle appends the assistant message and returns to idle
func (c *Controller) settle(msg models.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.messages = append(c.messages, msg)
	c.pending = false
}

// Exchange is the network half of one submission
type Exchange struct {
	controller *Controller
	text       string

	once  sync.Once
	reply models.Message
}

// Text returns the submitted user text
func (e *Exchange) Text() string {
	return e.text
}

// Run performs the request and settles the conversation.
//
// It always appends exactly one assistant message and clears the pending
// flag, whatever the outcome. Calling Run again returns the same message
// without issuing another request.
func (e *Exchange) Run(ctx context.Context) models.Message {
	e.once.Do(func() {
		e.reply = e.resolve(ctx)
		e.controller.settle(e.reply)
	})
	return e.reply
}

func (e *Exchange) resolve(ctx context.Context) (msg models.Message) {
	msg = models.Message{Role: models.RoleAssistant, Content: models.ConnectivityTroubleReply}

	defer func() {
		if r := recover(); r != nil {
			e.controller.logger.Printf("chat request panicked: %v", r)
			msg = models.Message{Role: models.RoleAssistant, Content: models.ConnectivityTroubleReply}
		}
	}()

	reply, found, err := e.send(ctx)
	switch {
	case err != nil:
		e.controller.logger.Printf("error sending message: %s", apierrors.Describe(err))
	case !found:
		msg.Content = models.FallbackReply
	default:
		msg.Content = reply
	}
	return msg
}

func (e *Exchange) send(ctx context.Context) (string, bool, error) {
	if e.controller.sender == nil {
		return "", false, fmt.Errorf("no chat backend configured")
	}
	return e.controller.sender.Send(ctx, e.text)
}
