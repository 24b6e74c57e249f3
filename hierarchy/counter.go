package hierarchy

import (
	"fmt"
	"strconv"
	"strings"
	"sync"
)

// IDPrefix is prepended to every global element ID
const IDPrefix = "ID-"

// IDCounter issues document-wide element IDs. Each document gets its own
// counter; IDs are handed out only when a node is committed, so abandoned
// pages never consume numbers.
type IDCounter struct {
	mu   sync.Mutex
	last int
}

// NewIDCounter returns a counter whose first ID is "ID-1"
func NewIDCounter() *IDCounter {
	return &IDCounter{}
}

// Next commits and returns the next ID
func (c *IDCounter) Next() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last++
	return FormatID(c.last)
}

// Committed returns how many IDs have been issued
func (c *IDCounter) Committed() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// FormatID renders the n-th ID
func FormatID(n int) string {
	return IDPrefix + strconv.Itoa(n)
}

// ParseID returns the sequence number of an ID produced by FormatID
func ParseID(id string) (int, error) {
	if !strings.HasPrefix(id, IDPrefix) {
		return 0, fmt.Errorf("id %q: missing %q prefix", id, IDPrefix)
	}
	n, err := strconv.Atoi(strings.TrimPrefix(id, IDPrefix))
	if err != nil {
		return 0, fmt.Errorf("id %q: %w", id, err)
	}
	return n, nil
}
