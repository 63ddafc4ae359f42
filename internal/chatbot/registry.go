package chatbot

import (
	"errors"
	"sync"
	"time"

	"github.com/nexvstar/site/internal/common"
)

// ErrRegistryFull is returned by Create once the live-conversation cap is hit.
var ErrRegistryFull = errors.New("chatbot: too many live conversations")

// sweepDivisor sets how often Create scans for idle conversations: at most
// once per idleTTL/sweepDivisor.
const sweepDivisor = 10

// Registry holds the live conversations of the process. Nothing is persisted.
type Registry struct {
	mu        sync.RWMutex
	convs     map[string]*Conversation
	idleTTL   time.Duration
	maxLive   int
	lastSweep time.Time
	delay     Delay
	now       func() time.Time
}

// NewRegistry builds a registry that drops conversations idle past idleTTL
// and holds at most maxLive of them. maxLive <= 0 means no cap.
func NewRegistry(delay Delay, idleTTL time.Duration, maxLive int) *Registry {
	if idleTTL <= 0 {
		idleTTL = 30 * time.Minute
	}
	return &Registry{
		convs:   make(map[string]*Conversation),
		idleTTL: idleTTL,
		maxLive: maxLive,
		delay:   delay,
		now:     time.Now,
	}
}

// Create starts a new conversation. Idle ones are swept first when the last
// sweep is old enough or the registry is full.
func (r *Registry) Create() (*Conversation, error) {
	now := r.now()
	id, err := common.NewULIDAt(now)
	if err != nil {
		return nil, err
	}
	conv := NewConversation(id, r.delay, r.now)

	r.mu.Lock()
	defer r.mu.Unlock()
	full := r.maxLive > 0 && len(r.convs) >= r.maxLive
	if full || now.Sub(r.lastSweep) >= r.idleTTL/sweepDivisor {
		r.sweepLocked(now)
	}
	if r.maxLive > 0 && len(r.convs) >= r.maxLive {
		return nil, ErrRegistryFull
	}
	r.convs[id] = conv
	return conv, nil
}

func (r *Registry) Get(id string) (*Conversation, error) {
	r.mu.RLock()
	conv, ok := r.convs[id]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrConversationNotFound
	}
	return conv, nil
}

func (r *Registry) Remove(id string) {
	r.mu.Lock()
	delete(r.convs, id)
	r.mu.Unlock()
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.convs)
}

func (r *Registry) sweepLocked(now time.Time) {
	r.lastSweep = now
	for id, c := range r.convs {
		if c.Typing() {
			continue
		}
		if now.Sub(c.LastActive()) > r.idleTTL {
			delete(r.convs, id)
		}
	}
}
