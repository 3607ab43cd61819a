// Package store keeps generated scores addressable by ID. Each score is
// gob-encoded to its own file; an index of overviews is flushed lazily.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"github.com/jsphweid/pianosight/model"
	"github.com/jsphweid/pianosight/util"
)

var ErrNotFound = errors.New("score not found")

const indexFilename = "index.dat"

// Entry is a stored score together with what produced it.
type Entry struct {
	ID       string
	Seed     uint64
	Created  time.Time
	Warnings []string
	Score    model.Score
}

// Overview is the index record for an entry.
type Overview struct {
	ID            string              `json:"id"`
	Filename      string              `json:"-"`
	Key           string              `json:"key"`
	TimeSignature model.TimeSignature `json:"time_signature"`
	Difficulty    model.Difficulty    `json:"difficulty"`
	Measures      int                 `json:"measures"`
	Seed          uint64              `json:"seed"`
	Created       time.Time           `json:"created"`
}

type Store struct {
	mu      sync.RWMutex
	dir     string
	entries map[string]Entry
	index   map[string]Overview
	flush   func(func())
}

// Open loads the index found in dir. An empty dir keeps everything in
// memory. Index writes are coalesced over delay.
func Open(dir string, delay time.Duration) (*Store, error) {
	s := &Store{
		dir:     dir,
		entries: make(map[string]Entry),
		index:   make(map[string]Overview),
		flush:   debounce.New(delay),
	}
	if dir == "" {
		return s, nil
	}
	if err := util.EnsureDir(dir); err != nil {
		return nil, err
	}
	index, err := util.ReadBinary[map[string]Overview](s.indexPath())
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		s.index = index
	}
	return s, nil
}

func (s *Store) indexPath() string {
	return filepath.Join(s.dir, indexFilename)
}

func overview(e Entry) Overview {
	return Overview{
		ID:            e.ID,
		Filename:      e.ID + ".dat",
		Key:           e.Score.Key,
		TimeSignature: e.Score.TimeSignature,
		Difficulty:    e.Score.Difficulty,
		Measures:      e.Score.NumMeasures(),
		Seed:          e.Seed,
		Created:       e.Created,
	}
}

// Put assigns the entry a fresh ID, persists it and returns the ID.
func (s *Store) Put(e Entry) (string, error) {
	e.ID = uuid.New().String()
	if e.Created.IsZero() {
		e.Created = time.Now().UTC()
	}
	o := overview(e)

	if s.dir != "" {
		if err := util.CreateBinary(filepath.Join(s.dir, o.Filename), e); err != nil {
			return "", err
		}
	}

	s.mu.Lock()
	s.entries[e.ID] = e
	s.index[e.ID] = o
	s.mu.Unlock()

	if s.dir != "" {
		s.flush(func() {
			if err := s.Flush(); err != nil {
				slog.Error("could not write score index", "err", err)
			}
		})
	}
	return e.ID, nil
}

// Get returns the entry with id, reading it from disk on first access.
func (s *Store) Get(id string) (Entry, error) {
	s.mu.RLock()
	e, cached := s.entries[id]
	o, indexed := s.index[id]
	s.mu.RUnlock()
	if cached {
		return e, nil
	}
	if !indexed || s.dir == "" {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	e, err := util.ReadBinary[Entry](filepath.Join(s.dir, o.Filename))
	if err != nil {
		return Entry{}, err
	}
	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()
	return e, nil
}

// List returns every overview, oldest first.
func (s *Store) List() []Overview {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Overview, 0, len(s.index))
	for _, id := range util.GetKeys(s.index) {
		res = append(res, s.index[id])
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Created.Before(res[j].Created)
	})
	return res
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.index)
}

// Flush writes the index now.
func (s *Store) Flush() error {
	if s.dir == "" {
		return nil
	}
	s.mu.RLock()
	snapshot := make(map[string]Overview, len(s.index))
	for id, o := range s.index {
		snapshot[id] = o
	}
	s.mu.RUnlock()
	return util.CreateBinary(s.indexPath(), snapshot)
}
