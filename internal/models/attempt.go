package models

import "time"

type Mode string

const (
	ModeMock  Mode = "mock"  // full-length mock exam
	ModeRehab Mode = "rehab" // weak-area rehab
	ModeSRS   Mode = "srs"   // short-term reinforcement
)

var ValidModes = map[Mode]bool{
	ModeMock:  true,
	ModeRehab: true,
	ModeSRS:   true,
}

// Attempt is one immutable answer record. Box is the Leitner review
// level (0..4); it is recorded for future spaced-repetition scheduling
// but no promotion policy reads it yet.
type Attempt struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	QuestionID int64     `json:"question_id"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
	Mode       Mode      `json:"mode"`
	Box        int       `json:"box"`
}

// ChapterAttempt is the slim projection used for the per-chapter result
// breakdown: which chapter an attempt belonged to and whether it was
// correct.
type ChapterAttempt struct {
	ChapterNum int
	IsCorrect  bool
}
