package session

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pycert-prep/backend/internal/models"
)

// SQLStore keeps session state in the exam_sessions table (one row per
// user) and attempt history in attempts. The ordered id list and the
// choice display order are stored as JSONB.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(userID int64) (*models.ExamSession, error) {
	var (
		sess      models.ExamSession
		idsJSON   []byte
		orderJSON []byte
	)
	err := s.db.QueryRow(
		`SELECT user_id, question_ids, current_index, correct_count, started_at, choice_order
		 FROM exam_sessions WHERE user_id = $1`,
		userID,
	).Scan(&sess.UserID, &idsJSON, &sess.Index, &sess.Correct, &sess.StartedAt, &orderJSON)
	if err == sql.ErrNoRows {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if err := json.Unmarshal(idsJSON, &sess.QuestionIDs); err != nil {
		return nil, fmt.Errorf("decode question ids: %w", err)
	}
	if err := json.Unmarshal(orderJSON, &sess.ChoiceOrder); err != nil {
		return nil, fmt.Errorf("decode choice order: %w", err)
	}
	return &sess, nil
}

func (s *SQLStore) Save(sess *models.ExamSession) error {
	idsJSON, err := json.Marshal(sess.QuestionIDs)
	if err != nil {
		return fmt.Errorf("encode question ids: %w", err)
	}
	orderJSON, err := json.Marshal(sess.ChoiceOrder)
	if err != nil {
		return fmt.Errorf("encode choice order: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO exam_sessions (user_id, question_ids, current_index, correct_count, started_at, choice_order)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id) DO UPDATE SET
		   question_ids = EXCLUDED.question_ids,
		   current_index = EXCLUDED.current_index,
		   correct_count = EXCLUDED.correct_count,
		   started_at = EXCLUDED.started_at,
		   choice_order = EXCLUDED.choice_order`,
		sess.UserID, idsJSON, sess.Index, sess.Correct, sess.StartedAt, orderJSON,
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SQLStore) Delete(userID int64) error {
	_, err := s.db.Exec(`DELETE FROM exam_sessions WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SaveWithAttempt writes the attempt row and the updated session state in
// one transaction, so the running score can never drift from history.
func (s *SQLStore) SaveWithAttempt(sess *models.ExamSession, att *models.Attempt) (*models.Attempt, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRow(
		`INSERT INTO attempts (user_id, question_id, is_correct, mode, box)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, answered_at`,
		att.UserID, att.QuestionID, att.IsCorrect, att.Mode, att.Box,
	).Scan(&att.ID, &att.AnsweredAt)
	if err != nil {
		return nil, fmt.Errorf("insert attempt: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE exam_sessions SET current_index = $1, correct_count = $2 WHERE user_id = $3`,
		sess.Index, sess.Correct, sess.UserID,
	)
	if err != nil {
		return nil, fmt.Errorf("update session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return att, nil
}

// RecentModeAttempts returns the newest attempts first, joined with each
// question's chapter number for the result breakdown.
func (s *SQLStore) RecentModeAttempts(userID int64, mode models.Mode, limit int) ([]models.ChapterAttempt, error) {
	rows, err := s.db.Query(
		`SELECT c.num, a.is_correct
		 FROM attempts a
		 JOIN questions q ON q.id = a.question_id
		 JOIN chapters c ON c.id = q.chapter_id
		 WHERE a.user_id = $1 AND a.mode = $2
		 ORDER BY a.answered_at DESC
		 LIMIT $3`,
		userID, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent attempts: %w", err)
	}
	defer rows.Close()

	var attempts []models.ChapterAttempt
	for rows.Next() {
		var at models.ChapterAttempt
		if err := rows.Scan(&at.ChapterNum, &at.IsCorrect); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempts = append(attempts, at)
	}
	return attempts, rows.Err()
}
