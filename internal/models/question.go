package models

import "time"

type Kind string

const (
	KindSingle Kind = "single"
	KindMulti  Kind = "multi"
	KindJudge  Kind = "judge"
)

var ValidKinds = map[Kind]bool{
	KindSingle: true,
	KindMulti:  true,
	KindJudge:  true,
}

// Chapter is one chapter of the official syllabus. Num is the stable
// chapter number (1..19); OfficialQuota is the number of questions the
// official exam draws from it (0 = not examined).
type Chapter struct {
	ID            int64  `json:"id"`
	Num           int    `json:"num"`
	Title         string `json:"title"`
	OfficialQuota int    `json:"official_quota"`
}

type Question struct {
	ID         int64     `json:"id"`
	ChapterID  int64     `json:"chapter_id"`
	ChapterNum int       `json:"chapter_num"`
	Kind       Kind      `json:"kind"`
	Stem       string    `json:"stem"`
	Note       string    `json:"note"`
	IsExcluded bool      `json:"is_excluded"`
	CreatedAt  time.Time `json:"created_at"`
	Choices    []Choice  `json:"choices,omitempty"`
}

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct"`
}

// DisplayChoice is a learner-facing choice with the answer data stripped.
type DisplayChoice struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`
}

type QuestionListResponse struct {
	Questions []Question `json:"questions"`
	Total     int        `json:"total"`
}
