package assistant

import "sync"

// MaxHistory is the number of messages kept per user.
const MaxHistory = 10

// History keeps per-user conversation messages in memory.
type History struct {
	mu    sync.Mutex
	items map[string][]string
}

func NewHistory() *History {
	return &History{items: make(map[string][]string)}
}

// Get returns a copy of the user's history, oldest first.
func (h *History) Get(userID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	return append([]string(nil), h.items[userID]...)
}

// AppendAndTrim appends messages and drops the oldest entries beyond maxLen.
func (h *History) AppendAndTrim(userID string, maxLen int, messages ...string) {
	if maxLen <= 0 {
		maxLen = MaxHistory
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	items := append(h.items[userID], messages...)
	if over := len(items) - maxLen; over > 0 {
		items = append([]string(nil), items[over:]...)
	}
	h.items[userID] = items
}

// Clear forgets the user's history.
func (h *History) Clear(userID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.items, userID)
}
