// Package stats keeps the player's win/loss record across games.
package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joseph-jy/gostop/engine"
	"github.com/sirupsen/logrus"
)

// ErrMalformed reports a stored record that cannot be decoded or fails validation.
var ErrMalformed = errors.New("malformed statistics record")

// Record is the persisted statistics of the human seat.
type Record struct {
	TotalGames int `json:"totalGames"`
	Wins       int `json:"wins"`
	Losses     int `json:"losses"`
	HighScore  int `json:"highScore"`
}

// Validate rejects negative counters and win/loss totals exceeding the game count.
func (r Record) Validate() error {
	if r.TotalGames < 0 || r.Wins < 0 || r.Losses < 0 || r.HighScore < 0 {
		return fmt.Errorf("%w: negative value in %+v", ErrMalformed, r)
	}
	if r.Wins+r.Losses > r.TotalGames {
		return fmt.Errorf("%w: %d wins and %d losses over %d games", ErrMalformed, r.Wins, r.Losses, r.TotalGames)
	}
	return nil
}

// Apply returns r updated with one decided game from side's point of view. The
// high score follows side's final score whether the game was won or lost.
// Nagari games leave r unchanged.
func (r Record) Apply(s engine.Settlement, side engine.Side) Record {
	if s.IsNagari || s.Winner == engine.SideNone {
		return r
	}
	r.TotalGames++
	if s.Winner == side {
		r.Wins++
	} else {
		r.Losses++
	}
	r.HighScore = max(r.HighScore, s.Final(side))
	return r
}

// decode parses and validates a JSON record.
func decode(data []byte) (Record, error) {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}

// Store persists a Record. Load returns a zero Record when nothing has been saved yet.
type Store interface {
	Load(ctx context.Context) (Record, error)
	Save(ctx context.Context, r Record) error
}

// FileStore keeps the record as a JSON file.
type FileStore struct {
	Path string
}

// NewFileStore returns a store writing to path.
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

func (f *FileStore) Load(_ context.Context) (Record, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("reading %s: %w", f.Path, err)
	}
	return decode(data)
}

func (f *FileStore) Save(_ context.Context, r Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o755); err != nil {
		return err
	}
	tmp := f.Path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.Path)
}

// MemoryStore keeps the record in process. Used by tests and the memory backend.
type MemoryStore struct {
	mu sync.Mutex
	r  Record
}

func (m *MemoryStore) Load(_ context.Context) (Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.r, nil
}

func (m *MemoryStore) Save(_ context.Context, r Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.r = r
	return nil
}

// Recorder applies finished games to a Store.
type Recorder struct {
	Store Store
	Side  engine.Side // the seat whose record is kept
	log   *logrus.Entry
}

// NewRecorder returns a Recorder for the player seat.
func NewRecorder(store Store) *Recorder {
	return &Recorder{
		Store: store,
		Side:  engine.SidePlayer,
		log:   logrus.WithField("component", "stats"),
	}
}

// Current loads the record. A malformed or unreadable record degrades to the
// zero Record with a warning.
func (rc *Recorder) Current(ctx context.Context) Record {
	r, err := rc.Store.Load(ctx)
	if err != nil {
		rc.log.WithError(err).Warn("statistics unavailable, using defaults")
		return Record{}
	}
	return r
}

// RecordGame folds a settlement into the stored record and returns the new record.
func (rc *Recorder) RecordGame(ctx context.Context, s engine.Settlement) (Record, error) {
	before := rc.Current(ctx)
	after := before.Apply(s, rc.Side)
	if after == before {
		rc.log.Debug("nagari, record unchanged")
		return before, nil
	}
	if err := rc.Store.Save(ctx, after); err != nil {
		return before, fmt.Errorf("saving statistics: %w", err)
	}
	rc.log.WithFields(logrus.Fields{
		"games":     after.TotalGames,
		"wins":      after.Wins,
		"losses":    after.Losses,
		"highScore": after.HighScore,
	}).Info("statistics updated")
	return after, nil
}
