package bank

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pycert-prep/backend/internal/exam"
	"github.com/pycert-prep/backend/internal/models"
)

var ErrNotFound = errors.New("not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Chapters ────────────────────────────────────────────

func (s *Store) ListChapters() ([]models.Chapter, error) {
	rows, err := s.db.Query(
		`SELECT id, num, title, official_quota FROM chapters ORDER BY num`,
	)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		var c models.Chapter
		if err := rows.Scan(&c.ID, &c.Num, &c.Title, &c.OfficialQuota); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, c)
	}
	return chapters, rows.Err()
}

// ChapterStocks counts non-excluded questions per chapter, including
// chapters with no questions at all.
func (s *Store) ChapterStocks() ([]exam.ChapterStock, error) {
	rows, err := s.db.Query(
		`SELECT c.num, c.title, c.official_quota,
		        COUNT(q.id) FILTER (WHERE q.is_excluded = false)
		 FROM chapters c
		 LEFT JOIN questions q ON q.chapter_id = c.id
		 GROUP BY c.num, c.title, c.official_quota
		 ORDER BY c.num`,
	)
	if err != nil {
		return nil, fmt.Errorf("chapter stocks: %w", err)
	}
	defer rows.Close()

	var stocks []exam.ChapterStock
	for rows.Next() {
		var st exam.ChapterStock
		if err := rows.Scan(&st.Num, &st.Title, &st.OfficialQuota, &st.Stock); err != nil {
			return nil, fmt.Errorf("scan chapter stock: %w", err)
		}
		stocks = append(stocks, st)
	}
	return stocks, rows.Err()
}

// ── Questions ───────────────────────────────────────────

func (s *Store) EligibleQuestionIDs(chapterNum int) ([]int64, error) {
	rows, err := s.db.Query(
		`SELECT q.id
		 FROM questions q
		 JOIN chapters c ON c.id = q.chapter_id
		 WHERE c.num = $1 AND q.is_excluded = false
		 ORDER BY q.id`,
		chapterNum,
	)
	if err != nil {
		return nil, fmt.Errorf("eligible question ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan question id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *Store) QuestionWithChoices(id int64) (*models.Question, error) {
	var q models.Question
	err := s.db.QueryRow(
		`SELECT q.id, q.chapter_id, c.num, q.kind, q.stem, q.note, q.is_excluded, q.created_at
		 FROM questions q
		 JOIN chapters c ON c.id = q.chapter_id
		 WHERE q.id = $1`,
		id,
	).Scan(&q.ID, &q.ChapterID, &q.ChapterNum, &q.Kind, &q.Stem, &q.Note, &q.IsExcluded, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}

	choices, err := s.choicesForQuestion(id)
	if err != nil {
		return nil, err
	}
	q.Choices = choices
	return &q, nil
}

func (s *Store) choicesForQuestion(questionID int64) ([]models.Choice, error) {
	rows, err := s.db.Query(
		`SELECT id, question_id, text, is_correct
		 FROM choices WHERE question_id = $1 ORDER BY id`,
		questionID,
	)
	if err != nil {
		return nil, fmt.Errorf("get choices: %w", err)
	}
	defer rows.Close()

	var choices []models.Choice
	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.Text, &c.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan choice: %w", err)
		}
		choices = append(choices, c)
	}
	return choices, rows.Err()
}

// ListQuestions pages through the bank, optionally filtered to one
// chapter (chapterNum <= 0 means all). Choices are not loaded here.
func (s *Store) ListQuestions(chapterNum, limit, offset int) ([]models.Question, int, error) {
	var total int
	var err error
	if chapterNum > 0 {
		err = s.db.QueryRow(
			`SELECT COUNT(*) FROM questions q JOIN chapters c ON c.id = q.chapter_id WHERE c.num = $1`,
			chapterNum,
		).Scan(&total)
	} else {
		err = s.db.QueryRow(`SELECT COUNT(*) FROM questions`).Scan(&total)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("count questions: %w", err)
	}

	var rows *sql.Rows
	selectCols := `q.id, q.chapter_id, c.num, q.kind, q.stem, q.note, q.is_excluded, q.created_at`
	if chapterNum > 0 {
		rows, err = s.db.Query(
			fmt.Sprintf(`SELECT %s FROM questions q
			 JOIN chapters c ON c.id = q.chapter_id
			 WHERE c.num = $1 ORDER BY q.id LIMIT $2 OFFSET $3`, selectCols),
			chapterNum, limit, offset,
		)
	} else {
		rows, err = s.db.Query(
			fmt.Sprintf(`SELECT %s FROM questions q
			 JOIN chapters c ON c.id = q.chapter_id
			 ORDER BY q.id LIMIT $1 OFFSET $2`, selectCols),
			limit, offset,
		)
	}
	if err != nil {
		return nil, 0, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.ChapterID, &q.ChapterNum, &q.Kind, &q.Stem,
			&q.Note, &q.IsExcluded, &q.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	return questions, total, rows.Err()
}

func (s *Store) UpdateQuestionNote(id int64, note string) error {
	res, err := s.db.Exec(`UPDATE questions SET note = $1 WHERE id = $2`, note, id)
	if err != nil {
		return fmt.Errorf("update note: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// ── Export/Import ───────────────────────────────────────

func (s *Store) ExportBundle() (*models.Bundle, error) {
	chapters, err := s.ListChapters()
	if err != nil {
		return nil, err
	}

	bundle := &models.Bundle{
		Chapters:  make([]models.BundleChapter, 0, len(chapters)),
		Questions: []models.BundleQuestion{},
	}
	for _, c := range chapters {
		bundle.Chapters = append(bundle.Chapters, models.BundleChapter{
			Num:           c.Num,
			Title:         c.Title,
			OfficialQuota: c.OfficialQuota,
		})
	}

	rows, err := s.db.Query(
		`SELECT q.id, c.num, q.kind, q.stem, q.note, q.is_excluded,
		        ch.text, ch.is_correct
		 FROM questions q
		 JOIN chapters c ON c.id = q.chapter_id
		 JOIN choices ch ON ch.question_id = q.id
		 ORDER BY q.id, ch.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("export questions: %w", err)
	}
	defer rows.Close()

	var lastID int64
	for rows.Next() {
		var (
			qid    int64
			bq     models.BundleQuestion
			choice models.BundleChoice
		)
		if err := rows.Scan(&qid, &bq.Chapter, &bq.Kind, &bq.Stem, &bq.Note,
			&bq.IsExcluded, &choice.Text, &choice.Correct); err != nil {
			return nil, fmt.Errorf("scan export row: %w", err)
		}
		if qid != lastID {
			bundle.Questions = append(bundle.Questions, bq)
			lastID = qid
		}
		last := &bundle.Questions[len(bundle.Questions)-1]
		last.Choices = append(last.Choices, choice)
	}
	return bundle, rows.Err()
}

// ImportBundle applies a bundle in one transaction: optional wipe of all
// questions, chapter upsert by number, then fresh question and choice
// rows. Any failure rolls the whole import back.
func (s *Store) ImportBundle(ctx context.Context, bundle *models.Bundle, wipe bool) (*models.ImportResult, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	result := &models.ImportResult{Wiped: wipe}

	if wipe {
		if _, err := tx.Exec(`DELETE FROM questions`); err != nil {
			return nil, fmt.Errorf("wipe questions: %w", err)
		}
	}

	chapterIDs := make(map[int]int64)
	for _, c := range bundle.Chapters {
		var id int64
		err := tx.QueryRow(
			`INSERT INTO chapters (num, title, official_quota)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (num) DO UPDATE SET title = EXCLUDED.title, official_quota = EXCLUDED.official_quota
			 RETURNING id`,
			c.Num, c.Title, c.OfficialQuota,
		).Scan(&id)
		if err != nil {
			return nil, fmt.Errorf("upsert chapter %d: %w", c.Num, err)
		}
		chapterIDs[c.Num] = id
		result.ChaptersUpserted++
	}

	for i, q := range bundle.Questions {
		chapterID, ok := chapterIDs[q.Chapter]
		if !ok {
			err := tx.QueryRow(`SELECT id FROM chapters WHERE num = $1`, q.Chapter).Scan(&chapterID)
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("question %d: unknown chapter %d", i+1, q.Chapter)
			}
			if err != nil {
				return nil, fmt.Errorf("question %d: look up chapter %d: %w", i+1, q.Chapter, err)
			}
			chapterIDs[q.Chapter] = chapterID
		}

		var questionID int64
		err := tx.QueryRow(
			`INSERT INTO questions (chapter_id, kind, stem, note, is_excluded)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			chapterID, q.Kind, q.Stem, q.Note, q.IsExcluded,
		).Scan(&questionID)
		if err != nil {
			return nil, fmt.Errorf("question %d: insert: %w", i+1, err)
		}

		for _, c := range q.Choices {
			_, err := tx.Exec(
				`INSERT INTO choices (question_id, text, is_correct)
				 VALUES ($1, $2, $3)`,
				questionID, c.Text, c.Correct,
			)
			if err != nil {
				return nil, fmt.Errorf("question %d: insert choice: %w", i+1, err)
			}
		}
		result.QuestionsCreated++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit import: %w", err)
	}
	return result, nil
}
