// Package tracking records tool usage for the conversation buffer owned by
// the embedding agent.
package tracking

import "sync"

// Sink receives one usage report per tool invocation.
type Sink interface {
	Track(toolName, query, summary string)
}

// Entry is a single tracked tool invocation.
type Entry struct {
	ToolName string
	Query    string
	Summary  string
}

// Buffer is an append-only in-memory Sink. Invocations are sequential per the
// tool contract, but the mutex keeps repeated invocations from separate
// goroutines safe anyway.
type Buffer struct {
	mu      sync.Mutex
	entries []Entry
}

// NewBuffer creates an empty usage buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Track appends a usage entry.
func (b *Buffer) Track(toolName, query, summary string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.entries = append(b.entries, Entry{ToolName: toolName, Query: query, Summary: summary})
}

// Entries returns a snapshot of tracked usage in append order.
func (b *Buffer) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Entry, len(b.entries))
	copy(out, b.entries)
	return out
}

// Len returns the number of tracked entries.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.entries)
}
