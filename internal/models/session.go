package models

import "time"

// ExamSession is the server-side state of one learner's mock exam in
// progress: the selected question order, the cursor, the running score,
// the absolute start time, and the per-question choice display order
// (drawn once so a retry render never reshuffles options).
type ExamSession struct {
	UserID      int64
	QuestionIDs []int64
	Index       int
	Correct     int
	StartedAt   time.Time
	ChoiceOrder map[int64][]int64
}

// ── Mock exam flow DTOs ──────────────────────────────────

type MockStartResponse struct {
	Total    int    `json:"total"`
	Intended int    `json:"intended"`
	Warning  string `json:"warning,omitempty"`
}

type Progress struct {
	Now     int `json:"now"`
	Total   int `json:"total"`
	Score   int `json:"score"`
	Percent int `json:"percent"`
}

type MockStateResponse struct {
	Finished     bool            `json:"finished"`
	Question     *Question       `json:"question,omitempty"`
	Choices      []DisplayChoice `json:"choices,omitempty"`
	Progress     *Progress       `json:"progress,omitempty"`
	RemainingSec int             `json:"remaining_sec"`
	DurationSec  int             `json:"duration_sec"`
}

type SubmitAnswerRequest struct {
	ChoiceID *int64 `json:"choice_id"`
}

type MockAnswerResponse struct {
	Correct bool     `json:"correct"`
	Score   int      `json:"score"`
	Diff    string   `json:"diff,omitempty"`
	Hints   []string `json:"hints,omitempty"`
	Note    string   `json:"note,omitempty"`
}

type MockAdvanceResponse struct {
	Finished bool `json:"finished"`
	Index    int  `json:"index"`
}

type ChapterResult struct {
	ChapterNum int `json:"chapter_num"`
	Attempted  int `json:"attempted"`
	Correct    int `json:"correct"`
}

type MockResultResponse struct {
	Total    int             `json:"total"`
	Score    int             `json:"score"`
	Chapters []ChapterResult `json:"chapters"`
}
