package audit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Log is an append-only audit trail of bulk actions. One process owns
// the file at a time; appends are serialized through a mutex and every
// entry is fsynced before Append returns.
type Log struct {
	file *os.File   // Audit file handle
	mu   sync.Mutex // Protects concurrent access
	path string     // Path to audit file

	// Sequence tracking
	nextSeq    uint64 // Next sequence number to assign
	lastSynced uint64 // Last sequence number fsynced to disk
}

// Open creates or opens an audit log at the specified path. An existing
// file is scanned first so the sequence counter continues where the
// previous run stopped; a file that fails the scan is refused rather
// than appended to.
func Open(path string) (*Log, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}

	log := &Log{
		file:    file,
		path:    path,
		nextSeq: 1, // Sequence starts at 1
	}

	lastSeq, err := scanLastSeq(path)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to scan existing audit file: %w", err)
	}
	if lastSeq > 0 {
		log.nextSeq = lastSeq + 1
		log.lastSynced = lastSeq
	}

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to seek to end of audit file: %w", err)
	}

	return log, nil
}

// Append writes one entry and fsyncs before returning. The sequence
// number is assigned here; a zero Timestamp is stamped with the current
// time. Returns the assigned sequence number.
//
// A failed append may leave a gap in the sequence. Readers tolerate
// gaps; they only require the sequence to increase.
func (l *Log) Append(e Entry) (uint64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return 0, fmt.Errorf("audit log is closed")
	}

	e.Seq = l.allocateSeq()
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	line, err := json.Marshal(e)
	if err != nil {
		return 0, fmt.Errorf("failed to encode audit entry: %w", err)
	}
	if len(line)+1 > MaxEntrySize {
		return 0, fmt.Errorf("audit entry size %d exceeds max %d", len(line)+1, MaxEntrySize)
	}

	if _, err := l.file.Write(append(line, '\n')); err != nil {
		return 0, fmt.Errorf("failed to write audit entry: %w", err)
	}

	// Fsync to ensure durability
	if err := l.file.Sync(); err != nil {
		return 0, fmt.Errorf("failed to fsync audit entry: %w", err)
	}
	l.lastSynced = e.Seq

	return e.Seq, nil
}

// Close syncs and closes the audit file.
func (l *Log) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file == nil {
		return nil
	}

	if err := l.file.Sync(); err != nil {
		return err
	}

	err := l.file.Close()
	l.file = nil
	return err
}

// Path returns the audit file path.
func (l *Log) Path() string {
	return l.path
}

// NextSeq returns the next sequence number that will be assigned (thread-safe).
func (l *Log) NextSeq() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.nextSeq
}

// LastSynced returns the last sequence number guaranteed to be on disk (thread-safe).
func (l *Log) LastSynced() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastSynced
}

// allocateSeq allocates and returns the next sequence number.
// Must be called with mutex held.
func (l *Log) allocateSeq() uint64 {
	seq := l.nextSeq
	l.nextSeq++
	return seq
}

// scanLastSeq reads an existing audit file and returns the highest
// sequence number in it. An empty file yields 0.
func scanLastSeq(path string) (uint64, error) {
	reader, err := OpenReader(path)
	if err != nil {
		return 0, err
	}
	defer reader.Close()

	var last uint64
	for {
		entry, err := reader.Next()
		if err == io.EOF {
			return last, nil
		}
		if err != nil {
			return 0, err
		}
		last = entry.Seq
	}
}
