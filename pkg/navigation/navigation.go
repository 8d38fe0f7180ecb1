// Package navigation defines the navigation gate shared between a wizard
// container and its pages, plus the page message type the gate reports into.
package navigation

import (
	"strings"
	"sync"
)

// PageChangeInfo describes a requested move. NewPage may equal the page count
// when the user finishes the wizard.
type PageChangeInfo struct {
	LastPage int
	NewPage  int
}

// Forward reports whether the move advances past LastPage.
func (p PageChangeInfo) Forward() bool { return p.NewPage > p.LastPage }

// Predicate decides whether a move may proceed.
type Predicate func(PageChangeInfo) bool

// AllowAll is the pass-through predicate.
func AllowAll(PageChangeInfo) bool { return true }

// Gate is a single predicate slot. Installing a predicate replaces the
// previous one; the last writer wins. An empty gate allows every move.
type Gate struct {
	mu        sync.RWMutex
	predicate Predicate
}

// Set installs predicate, replacing whatever was installed before.
func (g *Gate) Set(predicate Predicate) {
	g.mu.Lock()
	g.predicate = predicate
	g.mu.Unlock()
}

// Installed reports whether a predicate occupies the slot.
func (g *Gate) Installed() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.predicate != nil
}

// Allow evaluates the installed predicate for info. The lock is released
// before the predicate runs so it may install a different predicate.
func (g *Gate) Allow(info PageChangeInfo) bool {
	g.mu.RLock()
	predicate := g.predicate
	g.mu.RUnlock()
	if predicate == nil {
		return true
	}
	return predicate(info)
}

// MessageLevel classifies a page message.
type MessageLevel int

const (
	LevelInformation MessageLevel = iota
	LevelWarning
	LevelError
)

func (l MessageLevel) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	default:
		return "information"
	}
}

// Message is shown by the host above the page. The zero value clears it.
type Message struct {
	Text        string
	Description string
	Level       MessageLevel
}

// IsZero reports whether m is the cleared message.
func (m Message) IsZero() bool {
	return m.Text == "" && m.Description == ""
}

// Details splits the description into its lines.
func (m Message) Details() []string {
	if m.Description == "" {
		return nil
	}
	return strings.Split(m.Description, "\n")
}
