package toast

import (
	"context"
	"sync"
)

type Level string

const (
	LevelError   Level = "error"
	LevelSuccess Level = "success"
	LevelInfo    Level = "info"
)

type Message struct {
	Level Level  `json:"level"`
	Text  string `json:"text"`
}

// Queue collects messages until the next response drains them.
type Queue struct {
	mu       sync.Mutex
	messages []Message
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(level Level, text string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages = append(q.messages, Message{Level: level, Text: text})
}

// Error satisfies datatable.Notifier.
func (q *Queue) Error(_ context.Context, text string) {
	q.Push(LevelError, text)
}

func (q *Queue) Success(_ context.Context, text string) {
	q.Push(LevelSuccess, text)
}

// Drain returns and clears the pending messages.
func (q *Queue) Drain() []Message {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.messages
	q.messages = nil
	return out
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}
