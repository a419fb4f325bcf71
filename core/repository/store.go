package repository

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Collection file names inside the db directory
const (
	JobsFile          = "jobs.json"
	CandidatesFile    = "candidates.json"
	NotificationsFile = "notifications.json"
	UsersFile         = "userdata.json"
	ActivityFile      = "log.json"
	ChatHistoryFile   = "chat_history.json"
)

// Store is the whole-file JSON collection store. Every read loads the entire
// collection, every write rewrites it in full. One mutex guards each logical
// collection; there are no cross-collection transactions and two racing
// writers resolve last-writer-wins, same as the flat-file layout this
// replaces.
type Store struct {
	dir string

	mu      sync.Mutex
	fileMus map[string]*sync.Mutex
}

// NewStore creates a store rooted at dir, creating the directory if needed
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return &Store{
		dir:     dir,
		fileMus: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the db directory path
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) fileMu(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.fileMus[name]
	if !ok {
		m = &sync.Mutex{}
		s.fileMus[name] = m
	}
	return m
}

// Lock acquires the mutexes for the named collections and returns the
// release function. Names are locked in sorted order so callers holding
// multiple collections cannot deadlock each other.
func (s *Store) Lock(names ...string) func() {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	mus := make([]*sync.Mutex, 0, len(sorted))
	for _, name := range sorted {
		m := s.fileMu(name)
		m.Lock()
		mus = append(mus, m)
	}
	return func() {
		for i := len(mus) - 1; i >= 0; i-- {
			mus[i].Unlock()
		}
	}
}

// Read loads a whole collection into v. A missing or corrupt file yields the
// zero collection rather than an error: one bad file must not take down every
// listing view.
func (s *Store) Read(name string, v interface{}) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("Corrupt collection %s, treating as empty: %v", name, err)
		return nil
	}
	return nil
}

// Write rewrites a whole collection atomically (temp file + rename)
func (s *Store) Write(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
