package bank

import (
	"context"
	"fmt"

	"github.com/pycert-prep/backend/internal/exam"
	"github.com/pycert-prep/backend/internal/models"
)

// DashboardResponse summarizes bank readiness for the official exam.
type DashboardResponse struct {
	QuestionCount int               `json:"question_count"`
	TotalQuota    int               `json:"total_quota"`
	Achievable    int               `json:"achievable"`
	HasDeficit    bool              `json:"has_deficit"`
	Coverage      []ChapterCoverage `json:"coverage"`
	Deficits      []exam.Deficit    `json:"deficits"`
}

type ChapterCoverage struct {
	Chapter int    `json:"ch"`
	Title   string `json:"title"`
	Quota   int    `json:"quota"`
	Stock   int    `json:"stock"`
}

type Service struct {
	store  *Store
	quotas exam.QuotaTable
}

func NewService(store *Store, quotas exam.QuotaTable) *Service {
	return &Service{store: store, quotas: quotas}
}

// ── Dashboard & Quality ─────────────────────────────────

func (s *Service) Dashboard() (*DashboardResponse, error) {
	stocks, err := s.store.ChapterStocks()
	if err != nil {
		return nil, fmt.Errorf("dashboard stocks: %w", err)
	}
	deficits, err := exam.QuotaDeficits(s.store, s.quotas)
	if err != nil {
		return nil, fmt.Errorf("dashboard deficits: %w", err)
	}
	return buildDashboard(stocks, deficits, s.quotas), nil
}

func buildDashboard(stocks []exam.ChapterStock, deficits []exam.Deficit, quotas exam.QuotaTable) *DashboardResponse {
	resp := &DashboardResponse{
		TotalQuota: quotas.Total(),
		HasDeficit: len(deficits) > 0,
		Coverage:   make([]ChapterCoverage, 0, len(stocks)),
		Deficits:   deficits,
	}
	if resp.Deficits == nil {
		resp.Deficits = []exam.Deficit{}
	}

	for _, st := range stocks {
		quota, ok := quotas.Lookup(st.Num)
		if !ok {
			quota = st.OfficialQuota
		}
		resp.QuestionCount += st.Stock
		if st.Stock < quota {
			resp.Achievable += st.Stock
		} else {
			resp.Achievable += quota
		}
		resp.Coverage = append(resp.Coverage, ChapterCoverage{
			Chapter: st.Num,
			Title:   st.Title,
			Quota:   quota,
			Stock:   st.Stock,
		})
	}
	return resp
}

func (s *Service) Deficits() ([]exam.Deficit, error) {
	return exam.QuotaDeficits(s.store, s.quotas)
}

// ── Browsing ────────────────────────────────────────────

func (s *Service) ListChapters() ([]models.Chapter, error) {
	return s.store.ListChapters()
}

func (s *Service) ListQuestions(chapterNum, page, pageSize int) (*models.QuestionListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	questions, total, err := s.store.ListQuestions(chapterNum, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if questions == nil {
		questions = []models.Question{}
	}
	return &models.QuestionListResponse{Questions: questions, Total: total}, nil
}

// GetQuestion loads one question with its choices; answer flags are
// stripped so the payload is safe for learner-facing reads.
func (s *Service) GetQuestion(id int64) (*models.Question, []models.DisplayChoice, error) {
	q, err := s.store.QuestionWithChoices(id)
	if err != nil {
		return nil, nil, err
	}
	display := make([]models.DisplayChoice, len(q.Choices))
	for i, c := range q.Choices {
		display[i] = models.DisplayChoice{ID: c.ID, Text: c.Text}
	}
	q.Choices = nil
	return q, display, nil
}

// ── Export/Import ───────────────────────────────────────

func (s *Service) Export() (*models.Bundle, error) {
	return s.store.ExportBundle()
}

func (s *Service) Import(ctx context.Context, bundle *models.Bundle, wipe bool) (*models.ImportResult, error) {
	if err := validateBundle(bundle); err != nil {
		return nil, err
	}
	return s.store.ImportBundle(ctx, bundle, wipe)
}

// validateBundle checks the payload structurally before any row is
// written, naming the offending record in each error.
func validateBundle(bundle *models.Bundle) error {
	for i, c := range bundle.Chapters {
		if c.Num <= 0 {
			return fmt.Errorf("chapter %d: invalid number %d", i+1, c.Num)
		}
		if c.Title == "" {
			return fmt.Errorf("chapter %d: empty title", i+1)
		}
		if c.OfficialQuota < 0 {
			return fmt.Errorf("chapter %d: negative official quota", i+1)
		}
	}

	for i, q := range bundle.Questions {
		if q.Chapter <= 0 {
			return fmt.Errorf("question %d: invalid chapter %d", i+1, q.Chapter)
		}
		if !models.ValidKinds[q.Kind] {
			return fmt.Errorf("question %d: invalid kind %q", i+1, q.Kind)
		}
		if q.Stem == "" {
			return fmt.Errorf("question %d: empty stem", i+1)
		}
		if len(q.Choices) == 0 {
			return fmt.Errorf("question %d: empty choice list", i+1)
		}
		hasCorrect := false
		for j, c := range q.Choices {
			if c.Text == "" {
				return fmt.Errorf("question %d: choice %d has empty text", i+1, j+1)
			}
			if c.Correct {
				hasCorrect = true
			}
		}
		if !hasCorrect {
			return fmt.Errorf("question %d: no correct choice", i+1)
		}
	}
	return nil
}
