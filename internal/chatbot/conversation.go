package chatbot

import (
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
)

var (
	ErrEmptyInput           = errors.New("chatbot: empty input")
	ErrAwaitingResponse     = errors.New("chatbot: reply still pending")
	ErrConversationNotFound = errors.New("chatbot: conversation not found")
)

type Message struct {
	ID        uint64    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Delay controls the simulated typing pause before a bot reply is appended.
type Delay struct {
	Min    time.Duration
	Jitter time.Duration
	Sleep  func(time.Duration)
	Rand   func() float64
}

func DefaultDelay() Delay {
	return Delay{Min: 800 * time.Millisecond, Jitter: 600 * time.Millisecond}
}

func (d Delay) next() time.Duration {
	r := d.Rand
	if r == nil {
		r = rand.Float64
	}
	out := d.Min
	if d.Jitter > 0 {
		out += time.Duration(r() * float64(d.Jitter))
	}
	return out
}

func (d Delay) wait() {
	dur := d.next()
	if dur <= 0 {
		return
	}
	sleep := d.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(dur)
}

// Conversation is the transcript of one chat widget instance.
type Conversation struct {
	mu         sync.Mutex
	id         string
	nextID     uint64
	state      State
	transcript []Message
	lastActive time.Time

	delay Delay
	now   func() time.Time
}

func NewConversation(id string, delay Delay, now func() time.Time) *Conversation {
	if now == nil {
		now = time.Now
	}
	c := &Conversation{id: id, delay: delay, now: now}
	c.lastActive = now()
	c.appendLocked(RoleBot, Greeting)
	return c
}

func (c *Conversation) ID() string { return c.id }

func (c *Conversation) appendLocked(role Role, content string) Message {
	c.nextID++
	m := Message{
		ID:        c.nextID,
		Role:      role,
		Content:   content,
		Timestamp: c.now(),
	}
	c.transcript = append(c.transcript, m)
	c.lastActive = m.Timestamp
	return m
}

// Submit appends the user's message, waits out the typing delay and appends
// the scripted reply. The pending reply cannot be cancelled.
func (c *Conversation) Submit(text string) (user Message, reply Message, err error) {
	return c.SubmitNotify(text, nil)
}

// SubmitNotify is Submit with a hook called once the user message is
// recorded and the conversation is awaiting the reply.
func (c *Conversation) SubmitNotify(text string, pending func(user Message)) (Message, Message, error) {
	userMsg, err := c.begin(text)
	if err != nil {
		return Message{}, Message{}, err
	}
	if pending != nil {
		pending(userMsg)
	}

	c.delay.wait()

	return userMsg, c.finish(Respond(text)), nil
}

// begin validates input, records the user message and moves to AwaitingResponse.
func (c *Conversation) begin(text string) (Message, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return Message{}, ErrEmptyInput
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateAwaitingResponse {
		return Message{}, ErrAwaitingResponse
	}
	m := c.appendLocked(RoleUser, trimmed)
	c.state = StateAwaitingResponse
	return m, nil
}

func (c *Conversation) finish(reply string) Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	m := c.appendLocked(RoleBot, reply)
	c.state = StateIdle
	return m
}

// Messages returns a copy of the transcript in order.
func (c *Conversation) Messages() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Message, len(c.transcript))
	copy(out, c.transcript)
	return out
}

func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Conversation) Typing() bool { return c.State() == StateAwaitingResponse }

func (c *Conversation) LastActive() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastActive
}
