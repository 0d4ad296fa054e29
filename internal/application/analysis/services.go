package analysis

import (
	"context"
	"encoding/json"
	"log"

	"github.com/google/uuid"

	"github.com/bryanwahyu/personacolor/internal/application"
	appproducts "github.com/bryanwahyu/personacolor/internal/application/products"
	aidomain "github.com/bryanwahyu/personacolor/internal/domain/ai"
	aierrdomain "github.com/bryanwahyu/personacolor/internal/domain/aierrors"
	domain "github.com/bryanwahyu/personacolor/internal/domain/analysis"
	productsdomain "github.com/bryanwahyu/personacolor/internal/domain/products"
	"github.com/bryanwahyu/personacolor/internal/infra/ai/prompt"
)

// Service implements the analysis use-cases: the main analyze pipeline
// plus history listing, deletion and latest-based recommendation.
type Service struct {
	Repo     domain.Repository
	AI       aidomain.Client
	Products *appproducts.Service
	Failures aierrdomain.Repository // optional; nil disables the audit trail
	Clock    application.Clock
	Provider string // label written into failure rows
}

// Command untuk satu analisis
type AnalyzeCommand struct {
	UserID   string
	Colors   []string
	Notes    string
	ImageURL string
}

type AnalyzeResult struct {
	Palette        string                    `json:"palette"`
	Explanation    string                    `json:"explanation,omitempty"`
	Recommendation []aidomain.Suggestion     `json:"recommendation"`
	History        *domain.History           `json:"history"`
	Products       []*productsdomain.Product `json:"products"`
}

// Analyze runs the straight-line pipeline: prompt → provider → validate →
// persist → recommend. Two failure exits (provider call, palette
// validation), one success exit. An invalid AI response persists no
// history record; only a failure row is written.
func (s *Service) Analyze(ctx context.Context, cmd AnalyzeCommand) (*AnalyzeResult, error) {
	p, err := prompt.BuildPaletteAnalysis(cmd.Colors)
	if err != nil {
		return nil, err
	}

	res, err := s.AI.Analyze(ctx, p)
	if err != nil {
		s.recordFailure(ctx, cmd.UserID, aierrdomain.PhaseCall, err.Error(), nil)
		return nil, err
	}

	if res.PaletteName == "" {
		phase := aierrdomain.PhaseValidate
		if res.Unparsed() {
			phase = aierrdomain.PhaseParse
		}
		s.recordFailure(ctx, cmd.UserID, phase, "missing palette_name", res.RawPayload())
		return nil, &domain.InvalidResponseError{Raw: res.RawPayload()}
	}

	h := &domain.History{
		ID:            domain.HistoryID(uuid.New().String()),
		UserID:        cmd.UserID,
		ResultPalette: res.PaletteName,
		AIResult:      res.Raw,
		InputData: map[string]any{
			"colors":    cmd.Colors,
			"notes":     cmd.Notes,
			"image_url": cmd.ImageURL,
		},
		Colors:    cmd.Colors,
		Notes:     cmd.Notes,
		ImageURL:  cmd.ImageURL,
		CreatedAt: s.Clock.Now(),
	}
	if err := s.Repo.Save(ctx, h); err != nil {
		return nil, err
	}

	items, err := s.Products.Recommend(ctx, res.Tags, res.PaletteName)
	if err != nil {
		return nil, err
	}

	// keep the JSON field an empty array instead of null
	rec := res.Recommendation
	if rec == nil {
		rec = []aidomain.Suggestion{}
	}

	return &AnalyzeResult{
		Palette:        res.PaletteName,
		Explanation:    res.Explanation,
		Recommendation: rec,
		History:        h,
		Products:       items,
	}, nil
}

// ListHistory returns the caller's records, newest first.
func (s *Service) ListHistory(ctx context.Context, userID string, limit int) ([]*domain.History, error) {
	return s.Repo.ListByUser(ctx, userID, limit)
}

// DeleteHistory removes one record scoped to its owner.
func (s *Service) DeleteHistory(ctx context.Context, userID string, id domain.HistoryID) error {
	return s.Repo.Delete(ctx, userID, id)
}

// RecommendLatest reruns the matcher against the caller's most recent
// record, preferring its stored tags over the palette name. ErrNotFound
// without history.
func (s *Service) RecommendLatest(ctx context.Context, userID string) (*domain.History, []*productsdomain.Product, error) {
	latest, err := s.Repo.Latest(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.Products.Recommend(ctx, storedTags(latest), latest.ResultPalette)
	if err != nil {
		return nil, nil, err
	}
	return latest, items, nil
}

// ListFailures exposes the caller's recent AI failure entries.
func (s *Service) ListFailures(ctx context.Context, userID string, limit int) ([]*aierrdomain.AIError, error) {
	if s.Failures == nil {
		return nil, nil
	}
	return s.Failures.ListByUser(ctx, userID, limit)
}

// recordFailure is best effort; losing an audit row must not change the
// request outcome.
func (s *Service) recordFailure(ctx context.Context, userID, phase, msg string, raw any) {
	if s.Failures == nil {
		return
	}
	var details string
	if raw != nil {
		if b, err := json.Marshal(map[string]any{"raw": raw}); err == nil {
			details = string(b)
		}
	}
	e := &aierrdomain.AIError{
		UserID:      userID,
		Provider:    s.Provider,
		Phase:       phase,
		Message:     msg,
		DetailsJSON: details,
		CreatedAt:   s.Clock.Now(),
	}
	if err := s.Failures.Save(ctx, e); err != nil {
		log.Printf("analysis: save failure row: %v", err)
	}
}

func storedTags(h *domain.History) []string {
	arr, ok := h.AIResult["tags"].([]any)
	if !ok {
		return nil
	}
	var tags []string
	for _, it := range arr {
		if s, ok := it.(string); ok && s != "" {
			tags = append(tags, s)
		}
	}
	return tags
}
