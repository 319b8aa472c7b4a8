package session

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sort"
	"strings"
	"time"

	"github.com/pycert-prep/backend/internal/exam"
	"github.com/pycert-prep/backend/internal/explain"
	"github.com/pycert-prep/backend/internal/models"
)

// ExamDuration is the hard wall-clock limit for one mock exam. Elapsed
// time is recomputed from the stored absolute start time on every call,
// never trusted from the client.
const ExamDuration = 75 * time.Minute

var (
	// ErrNoSession means no mock exam is in progress for the user; the
	// caller should offer start-over guidance rather than fail hard.
	ErrNoSession = errors.New("no mock exam in progress")
	// ErrNoQuestions means the bank has no eligible questions anywhere,
	// which is fatal for starting a session.
	ErrNoQuestions = errors.New("no eligible questions in the bank")
	// ErrExamOver is returned when a submission arrives after the time
	// limit or past the last question.
	ErrExamOver = errors.New("exam is over")
)

// QuestionSource extends the assembly read surface with full question
// loads for rendering and judging.
type QuestionSource interface {
	exam.Bank
	QuestionWithChoices(id int64) (*models.Question, error)
}

// Store persists session state and attempt records. SaveWithAttempt must
// write both in a single transaction so the running score never drifts
// from the persisted history.
type Store interface {
	Get(userID int64) (*models.ExamSession, error)
	Save(sess *models.ExamSession) error
	Delete(userID int64) error
	SaveWithAttempt(sess *models.ExamSession, att *models.Attempt) (*models.Attempt, error)
	RecentModeAttempts(userID int64, mode models.Mode, limit int) ([]models.ChapterAttempt, error)
}

// Service drives one learner's mock exam through its states:
// not started → in progress → timed out/complete → reported.
type Service struct {
	source QuestionSource
	store  Store
	quotas exam.QuotaTable
	now    func() time.Time
}

func NewService(source QuestionSource, store Store, quotas exam.QuotaTable) *Service {
	return &Service{source: source, store: store, quotas: quotas, now: time.Now}
}

// Start assembles a fresh mock set and initializes session state. A bank
// shortfall only produces a warning; an empty set aborts with
// ErrNoQuestions. Any previous session for the user is replaced.
func (s *Service) Start(userID int64) (*models.MockStartResponse, error) {
	deficits, err := exam.QuotaDeficits(s.source, s.quotas)
	if err != nil {
		return nil, fmt.Errorf("quota deficits: %w", err)
	}

	ids, err := exam.BuildMockSet(s.source, s.quotas)
	if err != nil {
		return nil, fmt.Errorf("build mock set: %w", err)
	}
	if len(ids) == 0 {
		return nil, ErrNoQuestions
	}

	// Draw each question's choice display order once up front; it stays
	// fixed for the whole session so a re-render never moves options.
	choiceOrder := make(map[int64][]int64, len(ids))
	for _, qid := range ids {
		q, err := s.source.QuestionWithChoices(qid)
		if err != nil {
			return nil, fmt.Errorf("load question %d: %w", qid, err)
		}
		order := make([]int64, len(q.Choices))
		for i, c := range q.Choices {
			order[i] = c.ID
		}
		rand.Shuffle(len(order), func(i, j int) {
			order[i], order[j] = order[j], order[i]
		})
		choiceOrder[qid] = order
	}

	sess := &models.ExamSession{
		UserID:      userID,
		QuestionIDs: ids,
		StartedAt:   s.now().UTC(),
		ChoiceOrder: choiceOrder,
	}
	if err := s.store.Save(sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	resp := &models.MockStartResponse{
		Total:    len(ids),
		Intended: s.quotas.Total(),
	}
	if len(deficits) > 0 {
		resp.Warning = deficitWarning(deficits, len(ids), s.quotas.Total())
		log.Printf("WARN: [mock] user=%d starting with deficits: %s", userID, resp.Warning)
	}
	return resp, nil
}

// Current returns the question at the cursor, or a finished state when
// the time limit has passed or the set is exhausted.
func (s *Service) Current(userID int64) (*models.MockStateResponse, error) {
	sess, err := s.store.Get(userID)
	if err != nil {
		return nil, err
	}

	remaining := s.remaining(sess)
	if remaining <= 0 || sess.Index >= len(sess.QuestionIDs) {
		return &models.MockStateResponse{
			Finished:    true,
			DurationSec: int(ExamDuration.Seconds()),
		}, nil
	}

	q, err := s.source.QuestionWithChoices(sess.QuestionIDs[sess.Index])
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}

	return &models.MockStateResponse{
		Question:     stripAnswers(q),
		Choices:      orderedChoices(q, sess.ChoiceOrder[q.ID]),
		Progress:     progress(sess),
		RemainingSec: int(remaining.Seconds()),
		DurationSec:  int(ExamDuration.Seconds()),
	}, nil
}

// Submit judges at most one choice for the current question and records
// the outcome. A choice id that does not belong to the question — or no
// choice at all — scores as incorrect, never as an error. The attempt
// insert and the score update land in one transaction.
func (s *Service) Submit(userID int64, choiceID *int64) (*models.MockAnswerResponse, error) {
	sess, err := s.store.Get(userID)
	if err != nil {
		return nil, err
	}
	if s.remaining(sess) <= 0 || sess.Index >= len(sess.QuestionIDs) {
		return nil, ErrExamOver
	}

	q, err := s.source.QuestionWithChoices(sess.QuestionIDs[sess.Index])
	if err != nil {
		return nil, fmt.Errorf("load question: %w", err)
	}

	var chosen *models.Choice
	if choiceID != nil {
		for i := range q.Choices {
			if q.Choices[i].ID == *choiceID {
				chosen = &q.Choices[i]
				break
			}
		}
	}
	correct := chosen != nil && chosen.IsCorrect

	if correct {
		sess.Correct++
	}
	att := &models.Attempt{
		UserID:     userID,
		QuestionID: q.ID,
		IsCorrect:  correct,
		Mode:       models.ModeMock,
		Box:        0,
	}
	if _, err := s.store.SaveWithAttempt(sess, att); err != nil {
		return nil, fmt.Errorf("record attempt: %w", err)
	}

	resp := &models.MockAnswerResponse{Correct: correct, Score: sess.Correct}
	if !correct {
		correctText := correctChoiceText(q)
		chosenText := ""
		if chosen != nil {
			chosenText = chosen.Text
		}
		resp.Diff = explain.DiffView(chosenText, correctText)
		resp.Hints = explain.ExtractHints(q.Stem, correctText, explain.DefaultMaxHints)
		resp.Note = q.Note
	}
	return resp, nil
}

// Advance moves the cursor forward. It is the only operation that does —
// submitting an answer leaves the cursor in place so the judged question
// can be re-rendered.
func (s *Service) Advance(userID int64) (*models.MockAdvanceResponse, error) {
	sess, err := s.store.Get(userID)
	if err != nil {
		return nil, err
	}

	if s.remaining(sess) > 0 && sess.Index < len(sess.QuestionIDs) {
		sess.Index++
		if err := s.store.Save(sess); err != nil {
			return nil, fmt.Errorf("save session: %w", err)
		}
	}
	return &models.MockAdvanceResponse{
		Finished: s.remaining(sess) <= 0 || sess.Index >= len(sess.QuestionIDs),
		Index:    sess.Index,
	}, nil
}

// Report tallies the final score and a per-chapter breakdown from the
// most recent attempts in mock mode, then clears the session. Terminal.
func (s *Service) Report(userID int64) (*models.MockResultResponse, error) {
	sess, err := s.store.Get(userID)
	if err != nil {
		return nil, err
	}

	total := len(sess.QuestionIDs)
	attempts, err := s.store.RecentModeAttempts(userID, models.ModeMock, total)
	if err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}

	byChapter := make(map[int]*models.ChapterResult)
	for _, at := range attempts {
		r, ok := byChapter[at.ChapterNum]
		if !ok {
			r = &models.ChapterResult{ChapterNum: at.ChapterNum}
			byChapter[at.ChapterNum] = r
		}
		r.Attempted++
		if at.IsCorrect {
			r.Correct++
		}
	}
	chapters := make([]models.ChapterResult, 0, len(byChapter))
	for _, r := range byChapter {
		chapters = append(chapters, *r)
	}
	sort.Slice(chapters, func(i, j int) bool {
		return chapters[i].ChapterNum < chapters[j].ChapterNum
	})

	if err := s.store.Delete(userID); err != nil {
		log.Printf("WARN: [mock] failed to clear session for user=%d: %v", userID, err)
	}

	return &models.MockResultResponse{
		Total:    total,
		Score:    sess.Correct,
		Chapters: chapters,
	}, nil
}

func (s *Service) remaining(sess *models.ExamSession) time.Duration {
	return ExamDuration - s.now().Sub(sess.StartedAt)
}

func progress(sess *models.ExamSession) *models.Progress {
	total := len(sess.QuestionIDs)
	return &models.Progress{
		Now:     sess.Index + 1,
		Total:   total,
		Score:   sess.Correct,
		Percent: progressPercent(sess.Index, total),
	}
}

// progressPercent normalizes a position to 0..100.
func progressPercent(now, total int) int {
	if now < 0 {
		now = 0
	}
	if total <= 0 {
		return 0
	}
	pct := int(float64(now)*100.0/float64(total) + 0.5)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// stripAnswers returns a learner-facing copy without choices or notes.
func stripAnswers(q *models.Question) *models.Question {
	out := *q
	out.Choices = nil
	out.Note = ""
	return &out
}

// orderedChoices applies the session's fixed display order. Choices
// missing from the stored order sort last, in bank order.
func orderedChoices(q *models.Question, order []int64) []models.DisplayChoice {
	pos := make(map[int64]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	choices := make([]models.Choice, len(q.Choices))
	copy(choices, q.Choices)
	sort.SliceStable(choices, func(i, j int) bool {
		pi, iOK := pos[choices[i].ID]
		pj, jOK := pos[choices[j].ID]
		if iOK != jOK {
			return iOK
		}
		return pi < pj
	})

	out := make([]models.DisplayChoice, len(choices))
	for i, c := range choices {
		out[i] = models.DisplayChoice{ID: c.ID, Text: c.Text}
	}
	return out
}

// correctChoiceText joins the texts of all correct choices, covering the
// multi kind where more than one choice is right.
func correctChoiceText(q *models.Question) string {
	var texts []string
	for _, c := range q.Choices {
		if c.IsCorrect {
			texts = append(texts, c.Text)
		}
	}
	return strings.Join(texts, " / ")
}

func deficitWarning(deficits []exam.Deficit, got, intended int) string {
	parts := make([]string, len(deficits))
	for i, d := range deficits {
		parts[i] = fmt.Sprintf("Ch%d short by %d", d.Chapter, d.Lack)
	}
	if got < intended {
		return fmt.Sprintf("%s — this exam has %d of %d questions", strings.Join(parts, ", "), got, intended)
	}
	return strings.Join(parts, ", ")
}
