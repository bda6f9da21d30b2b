// ABOUTME: Manages the recently viewed companies list
// ABOUTME: Stores company names, most recent first, in the config directory

package recent

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Talentid15/Candidate/internal/jsonfile"
)

// MaxEntries is the maximum number of companies to keep
const MaxEntries = 5

// FileName is the JSON file inside the config directory
const FileName = "recent.json"

// Entry is one viewed company
type Entry struct {
	Name     string    `json:"name"`
	ViewedAt time.Time `json:"viewedAt"`
}

type recentData struct {
	Companies []Entry `json:"companies"`
}

// Companies manages the recently viewed list
type Companies struct {
	configDir string
	now       func() time.Time

	mu      sync.Mutex
	entries []Entry
}

// New creates a manager for configDir. An empty configDir keeps the list in
// memory only.
func New(configDir string) *Companies {
	return &Companies{configDir: configDir, now: time.Now}
}

func (c *Companies) configFile() string {
	return filepath.Join(c.configDir, FileName)
}

// Load reads the list from disk. An invalid file starts fresh.
func (c *Companies) Load() ([]Entry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked()
}

func (c *Companies) loadLocked() ([]Entry, error) {
	c.entries = []Entry{}
	if c.configDir == "" {
		return c.copyLocked(), nil
	}

	var data recentData
	found, err := jsonfile.Read(c.configFile(), &data)
	if err != nil && !found {
		return nil, err
	}
	if err != nil {
		// Invalid JSON, start fresh
		return c.copyLocked(), nil
	}

	for _, e := range data.Companies {
		if strings.TrimSpace(e.Name) != "" {
			c.entries = append(c.entries, e)
		}
	}
	if len(c.entries) > MaxEntries {
		c.entries = c.entries[:MaxEntries]
	}
	return c.copyLocked(), nil
}

// Add records a view of name, moving it to the front if already listed
func (c *Companies) Add(name string) error {
	if strings.TrimSpace(name) == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entries == nil {
		if _, err := c.loadLocked(); err != nil {
			c.entries = []Entry{}
		}
	}

	next := make([]Entry, 0, len(c.entries)+1)
	next = append(next, Entry{Name: name, ViewedAt: c.now().UTC()})
	for _, e := range c.entries {
		if !strings.EqualFold(e.Name, name) {
			next = append(next, e)
		}
	}
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	c.entries = next

	if c.configDir == "" {
		return nil
	}
	return jsonfile.Write(c.configFile(), recentData{Companies: next}, 0600)
}

// List returns the current list, loading it on first use
func (c *Companies) List() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.entries == nil {
		c.loadLocked()
	}
	return c.copyLocked()
}

// Names returns just the company names
func (c *Companies) Names() []string {
	entries := c.List()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	return names
}

func (c *Companies) copyLocked() []Entry {
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}
