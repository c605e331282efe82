// Package library holds a user's persisted study collections: history,
// saved solutions, flashcard sets, saved exercises and saved reports.
package library

import (
	"github.com/dsilva/studium/internal/exercise"
)

// HistoryDetails carries optional timing detail for a history entry.
type HistoryDetails struct {
	TotalTime       int   `json:"totalTime"`
	TimePerQuestion []int `json:"timePerQuestion,omitempty"`
}

// HistoryItem is an immutable record of a completed session. Items are
// kept most-recent-first; insertion order is the display order.
type HistoryItem struct {
	ID      string          `json:"id"`
	Mode    string          `json:"mode"`
	Topic   string          `json:"topic"`
	Score   string          `json:"score"`
	Date    string          `json:"date"`
	Details *HistoryDetails `json:"details,omitempty"`
}

// SavedSolution is a persisted step-by-step worked solution.
type SavedSolution struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Problem string `json:"problem"`
	Content string `json:"content"`
}

// FlashcardSet is a named set of term/definition cards.
type FlashcardSet struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Topic string          `json:"topic"`
	Date  string          `json:"date"`
	Cards []exercise.Pair `json:"cards"`
}

// SavedExercise is a replayable item set. Name and items are editable
// after saving; Mode is fixed at creation.
type SavedExercise struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Mode      exercise.Mode       `json:"mode"`
	Topic     string              `json:"topic"`
	Questions []exercise.Question `json:"questions,omitempty"`
	Pairs     []exercise.Pair     `json:"pairs,omitempty"`
}

// SavedReport is a rendered session report. Content is self-contained:
// redisplaying it needs no live calls.
type SavedReport struct {
	ID      string `json:"id"`
	Date    string `json:"date"`
	Topic   string `json:"topic"`
	Mode    string `json:"mode"`
	Content string `json:"content"`
}

// Data is one user's five collections, persisted together.
type Data struct {
	History       []HistoryItem   `json:"history"`
	Solutions     []SavedSolution `json:"solutions"`
	FlashcardSets []FlashcardSet  `json:"flashcardSets"`
	Exercises     []SavedExercise `json:"exercises"`
	Reports       []SavedReport   `json:"reports"`
}
