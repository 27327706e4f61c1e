// Package runlog journals completed computations in a LevelDB database.
//
// One Entry is written per finished run: operands, result, step count, and
// wall-clock time. The journal never stores in-flight machine state; it is a
// record of results, not a checkpoint.
//
// Key scheme — "|" separated so values can never collide with the prefix:
//
//	run|<timestamp>|<uuid> → Entry JSON
//
// Timestamps use a fixed-width UTC format so lexicographic key order is
// chronological and Recent can walk the keyspace backwards.
package runlog

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const prefixRun = "run|"

// keyTimeFormat is fixed-width (nanoseconds never trimmed) so keys sort
// chronologically as bytes.
const keyTimeFormat = "2006-01-02T15:04:05.000000000Z"

// Entry is one completed computation.
type Entry struct {
	ID           string `json:"id"`
	Multiplier   int    `json:"multiplier"`
	Multiplicand int    `json:"multiplicand"`
	Result       int    `json:"result"`
	Steps        int    `json:"steps"`
	ElapsedMs    int64  `json:"elapsed_ms"`
	RecordedAt   string `json:"recorded_at"`
}

// Journal is a LevelDB-backed append-mostly store of run entries.
// LevelDB is single-writer: a second tapemul process opening the same path
// will fail at Open rather than corrupt the journal.
type Journal struct {
	db *leveldb.DB
}

// Open opens (or creates) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, fmt.Errorf("open run journal at %s: %w", path, err)
	}
	return &Journal{db: db}, nil
}

// Close flushes and closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Record persists e, assigning ID and RecordedAt when absent, and returns the
// stored entry.
func (j *Journal) Record(e Entry) (Entry, error) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.RecordedAt == "" {
		e.RecordedAt = time.Now().UTC().Format(keyTimeFormat)
	}
	val, err := json.Marshal(e)
	if err != nil {
		return Entry{}, fmt.Errorf("encode run entry: %w", err)
	}
	key := prefixRun + e.RecordedAt + "|" + e.ID
	if err := j.db.Put([]byte(key), val, nil); err != nil {
		return Entry{}, fmt.Errorf("persist run entry: %w", err)
	}
	return e, nil
}

// Recent returns up to n entries, newest first. n <= 0 returns everything.
// Entries that fail to decode are skipped with a warning rather than sinking
// the whole listing.
func (j *Journal) Recent(n int) ([]Entry, error) {
	iter := j.db.NewIterator(util.BytesPrefix([]byte(prefixRun)), nil)
	defer iter.Release()

	var entries []Entry
	for ok := iter.Last(); ok; ok = iter.Prev() {
		var e Entry
		if err := json.Unmarshal(iter.Value(), &e); err != nil {
			slog.Warn("skipping undecodable run entry", "key", string(iter.Key()), "error", err)
			continue
		}
		entries = append(entries, e)
		if n > 0 && len(entries) == n {
			break
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("scan run journal: %w", err)
	}
	return entries, nil
}
