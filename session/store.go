package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// DefaultMaxExchanges bounds how many (query, answer) pairs a session keeps.
const DefaultMaxExchanges = 2

// Exchange is one completed query/answer pair.
type Exchange struct {
	Query  string `json:"query"`
	Answer string `json:"answer"`
}

// Store holds exchange history per session id. Mutation is atomic per id, so
// concurrent queries on the same session never lose updates.
type Store struct {
	mu           sync.Mutex
	sessions     map[string][]Exchange
	maxExchanges int
}

func NewStore(maxExchanges int) *Store {
	if maxExchanges <= 0 {
		maxExchanges = DefaultMaxExchanges
	}
	return &Store{
		sessions:     make(map[string][]Exchange),
		maxExchanges: maxExchanges,
	}
}

// New allocates a fresh session id.
func (s *Store) New() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = nil
	s.mu.Unlock()
	return id
}

// History renders the most recent exchanges as alternating User/Assistant
// lines for inclusion in model context. The second return is false when the
// session has no history yet.
func (s *Store) History(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exchanges := s.sessions[id]
	if len(exchanges) == 0 {
		return "", false
	}
	var b strings.Builder
	for i, e := range exchanges {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "User: %s\nAssistant: %s", e.Query, e.Answer)
	}
	return b.String(), true
}

// AddExchange appends one exchange, evicting the oldest beyond the bound.
// An unknown id is created on first use.
func (s *Store) AddExchange(id, query, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exchanges := append(s.sessions[id], Exchange{Query: query, Answer: answer})
	if drop := len(exchanges) - s.maxExchanges; drop > 0 {
		exchanges = exchanges[drop:]
	}
	s.sessions[id] = exchanges
}

// Clear removes all history for id. Unknown ids are a no-op, not an error.
func (s *Store) Clear(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Save writes all sessions to a JSON file.
func (s *Store) Save(path string) error {
	s.mu.Lock()
	snapshot := make(map[string][]Exchange, len(s.sessions))
	for id, exchanges := range s.sessions {
		snapshot[id] = append([]Exchange(nil), exchanges...)
	}
	s.mu.Unlock()

	b, err := json.MarshalIndent(snapshot, "", " ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// Load replaces the store's sessions with the contents of a JSON file.
// A missing file loads as empty.
func (s *Store) Load(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	loaded := make(map[string][]Exchange)
	if err := json.Unmarshal(b, &loaded); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = loaded
	for id, exchanges := range s.sessions {
		if drop := len(exchanges) - s.maxExchanges; drop > 0 {
			s.sessions[id] = exchanges[drop:]
		}
	}
	return nil
}
