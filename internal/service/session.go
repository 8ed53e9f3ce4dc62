package service

import (
	"sync"

	"github.com/google/uuid"

	"github.com/leadline-ai/leadline/internal/agent"
	"github.com/leadline-ai/leadline/internal/llm"
)

// Session is the explicit per-conversation context: the lead machine and
// the chat history. Each session is owned by one conversation at a time;
// turns within a session are serialized by its mutex.
type Session struct {
	ID      string
	mu      sync.Mutex
	machine *agent.LeadMachine
	history []llm.Message
}

// SessionManager hands out sessions by id, creating them on first use.
type SessionManager struct {
	mu       sync.Mutex
	rules    []agent.ExtractRule
	sessions map[string]*Session
}

func NewSessionManager() *SessionManager {
	return NewSessionManagerWithRules(agent.DefaultRules())
}

// NewSessionManagerWithRules lets callers plug a custom extraction rule
// table into every new session's lead machine.
func NewSessionManagerWithRules(rules []agent.ExtractRule) *SessionManager {
	return &SessionManager{
		rules:    rules,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating a fresh one (with a new uuid
// when id is empty) if it does not exist yet.
func (m *SessionManager) Get(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if s, ok := m.sessions[id]; ok {
		return s
	}

	s := &Session{
		ID:      id,
		machine: agent.NewLeadMachineWithRules(m.rules),
	}
	m.sessions[id] = s
	return s
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
