// Package queue owns the durable pending/resolved question lists.
//
// The two files are line oriented, one question per line, blank lines
// ignored. The resolved file is append-only and is the only crash-safe
// checkpoint; the pending file is rewritten wholesale after each batch.
// Queue I/O failures are fatal to the run: the queue is the sole source of
// truth for unfinished work.
package queue

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/keyday/llmbench/pkg/api"
)

// Manager reads and mutates the pending and resolved question files.
type Manager struct {
	pendingPath  string
	resolvedPath string
}

// NewManager creates a queue Manager over the two list files.
func NewManager(pendingPath, resolvedPath string) *Manager {
	return &Manager{
		pendingPath:  pendingPath,
		resolvedPath: resolvedPath,
	}
}

// Load reads the pending questions in file order. A missing or unreadable
// pending file is an error: without it there is no source of truth for
// unfinished work.
func (m *Manager) Load() ([]api.Question, error) {
	f, err := os.Open(m.pendingPath)
	if err != nil {
		return nil, fmt.Errorf("opening pending file %s: %w", m.pendingPath, err)
	}
	defer f.Close()

	var questions []api.Question
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			questions = append(questions, api.Question(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading pending file %s: %w", m.pendingPath, err)
	}

	return questions, nil
}

// PromptAdHoc asks the operator for a single question when the pending list
// is empty. Returns ok=false on an explicit exit signal ("exit" or "quit"),
// on end of input, or when nothing was entered.
func (m *Manager) PromptAdHoc(in io.Reader, out io.Writer) (api.Question, bool, error) {
	fmt.Fprint(out, "No pending questions found. Please enter a new question (or type 'exit'/'quit' to end): ")

	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false, fmt.Errorf("reading question: %w", err)
	}

	entered := strings.ToLower(strings.TrimSpace(line))
	if entered == "" || entered == "exit" || entered == "quit" {
		return "", false, nil
	}
	return api.Question(entered), true, nil
}

// AppendResolved appends one question to the resolved list. Called
// immediately after a question's report is accepted, making it the
// crash-safe record of completed work.
func (m *Manager) AppendResolved(q api.Question) error {
	f, err := os.OpenFile(m.resolvedPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening resolved file %s: %w", m.resolvedPath, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintln(f, string(q)); err != nil {
		return fmt.Errorf("appending to resolved file %s: %w", m.resolvedPath, err)
	}
	return nil
}

// RewritePending replaces the pending list wholesale with the remaining
// questions. Called once after the whole batch, not per question.
func (m *Manager) RewritePending(remaining []api.Question) error {
	f, err := os.OpenFile(m.pendingPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening pending file %s: %w", m.pendingPath, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, q := range remaining {
		if _, err := fmt.Fprintln(w, string(q)); err != nil {
			return fmt.Errorf("rewriting pending file %s: %w", m.pendingPath, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing pending file %s: %w", m.pendingPath, err)
	}
	return nil
}
