package audit

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// ===========================================================================
// AUDIT READER OPERATIONS
// ===========================================================================
//
// The reader is responsible for:
// 1. Scanning the audit file line by line
// 2. Decoding each line back into an Entry
// 3. Sanity-checking sequence numbers while iterating
//
// Safety checks performed per line:
// - Line length <= MaxEntrySize
// - Line decodes as a well-formed Entry
// - Seq strictly increases across the file
//
// A Reader is a one-shot forward scan; open a new one to re-read.
//
// ===========================================================================

// Reader reads and decodes audit entries from a file.
type Reader struct {
	file    *os.File       // File handle for reading
	path    string         // Path to audit file
	scanner *bufio.Scanner // Line scanner over the file
	line    int            // Last line number read, 1-based
	lastSeq uint64         // Last sequence number read
}

// OpenReader creates a new audit reader for the given file.
func OpenReader(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audit file: %w", err)
	}

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), MaxEntrySize)

	return &Reader{
		file:    file,
		path:    path,
		scanner: scanner,
	}, nil
}

// Close closes the audit reader.
func (r *Reader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}

// Next reads the next entry from the current position. Empty lines are
// skipped. Returns io.EOF when the end of the file is reached.
func (r *Reader) Next() (*Entry, error) {
	for {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return nil, fmt.Errorf("failed to read audit line %d: %w", r.line+1, err)
			}
			return nil, io.EOF
		}
		r.line++

		raw := r.scanner.Bytes()
		if len(raw) == 0 {
			continue
		}

		var entry Entry
		if err := json.Unmarshal(raw, &entry); err != nil {
			return nil, fmt.Errorf("malformed audit entry at line %d: %w", r.line, err)
		}

		if entry.Seq <= r.lastSeq {
			return nil, fmt.Errorf("sequence went backwards at line %d: %d after %d (possible corruption)",
				r.line, entry.Seq, r.lastSeq)
		}
		r.lastSeq = entry.Seq

		return &entry, nil
	}
}

// ===========================================================================
// SCANNING UTILITIES
// ===========================================================================

// ScanAll reads all remaining entries. On error the entries decoded so
// far are returned alongside it.
func (r *Reader) ScanAll() ([]Entry, error) {
	var entries []Entry
	for {
		entry, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return entries, err
		}
		entries = append(entries, *entry)
	}

	return entries, nil
}

// ScanFrom reads all entries with a sequence number greater than afterSeq.
func (r *Reader) ScanFrom(afterSeq uint64) ([]Entry, error) {
	var entries []Entry
	for {
		entry, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return entries, err
		}
		if entry.Seq > afterSeq {
			entries = append(entries, *entry)
		}
	}

	return entries, nil
}

// Tail returns the last n entries of the file. A file with fewer than n
// entries returns everything it has.
func (r *Reader) Tail(n int) ([]Entry, error) {
	if n <= 0 {
		return nil, nil
	}

	entries, err := r.ScanAll()
	if err != nil {
		return nil, err
	}
	if n >= len(entries) {
		return entries, nil
	}
	return entries[len(entries)-n:], nil
}
