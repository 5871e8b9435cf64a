package nfc

import (
	"time"

	"github.com/dotside-studios/nfc-tag-reader/internal/syncutil"
)

// CardPresenceTimeout is how long a tag stays "present" after it was last
// seen in the field.
const CardPresenceTimeout = time.Second

// TagCache tracks which tags are in the field so each presentation is read
// once, and remembers the last read event.
type TagCache struct {
	mu       syncutil.RWMutex
	clock    Clock
	timeout  time.Duration
	lastSeen map[string]time.Time // keyed by BytesToHex(tag ID)
	last     *ReadEvent
}

// NewTagCache creates and initializes a new TagCache instance.
func NewTagCache(clock Clock, timeout time.Duration) *TagCache {
	if clock == nil {
		clock = NewRealClock()
	}
	if timeout <= 0 {
		timeout = CardPresenceTimeout
	}
	return &TagCache{
		clock:    clock,
		timeout:  timeout,
		lastSeen: make(map[string]time.Time),
	}
}

// Observe records that the tag is in the field and reports whether this is a
// new presentation, i.e. the tag was not seen within the presence timeout.
func (c *TagCache) Observe(uid string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	seen, ok := c.lastSeen[uid]
	c.lastSeen[uid] = now
	return !ok || now.Sub(seen) >= c.timeout
}

// Expire forgets tags not seen within the presence timeout and returns them.
func (c *TagCache) Expire() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	var gone []string
	for uid, seen := range c.lastSeen {
		if now.Sub(seen) >= c.timeout {
			delete(c.lastSeen, uid)
			gone = append(gone, uid)
		}
	}
	return gone
}

// IsCardPresent reports whether any tag was seen within the presence timeout.
func (c *TagCache) IsCardPresent() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.clock.Now()
	for _, seen := range c.lastSeen {
		if now.Sub(seen) < c.timeout {
			return true
		}
	}
	return false
}

// SetLast stores the most recent read event.
func (c *TagCache) SetLast(ev ReadEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last = &ev
}

// Last returns the most recent read event.
func (c *TagCache) Last() (ReadEvent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.last == nil {
		return ReadEvent{}, false
	}
	return *c.last, true
}

// Clear forgets every tag in the field. The last event is kept.
func (c *TagCache) Clear() {
	c.mu.Lock()
	c.lastSeen = make(map[string]time.Time)
	c.mu.Unlock()
}
