package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/monsite/console-api/internal/api/metrics"
	"github.com/monsite/console-api/internal/core/domain"
	"github.com/monsite/console-api/internal/core/ports"
)

var (
	ErrQueryTooShort  = errors.New("natural language query must be at least 5 characters")
	ErrSchemaTooShort = errors.New("database description must be at least 10 characters")
)

const (
	minQueryLen  = 5
	minSchemaLen = 10
)

// VisualizationService forwards natural-language queries to the workflow
// engine. The engine is a single-shot opaque translator; when it fails the
// service falls back to a deterministic local generator so the console keeps
// working during workflow outages.
type VisualizationService struct {
	client ports.WorkflowClient
	log    zerolog.Logger
}

func NewVisualizationService(client ports.WorkflowClient, log zerolog.Logger) *VisualizationService {
	return &VisualizationService{client: client, log: log}
}

func (s *VisualizationService) Generate(ctx context.Context, req domain.VisualizationRequest) (*domain.VisualizationResult, error) {
	req.Query = strings.TrimSpace(req.Query)
	req.Schema = strings.TrimSpace(req.Schema)
	// Rune counts, not bytes: the console is French-first and accented
	// queries must not slip past the minimums.
	if utf8.RuneCountInString(req.Query) < minQueryLen {
		return nil, ErrQueryTooShort
	}
	if utf8.RuneCountInString(req.Schema) < minSchemaLen {
		return nil, ErrSchemaTooShort
	}

	start := time.Now()
	result, err := s.client.Generate(ctx, req)
	metrics.WorkflowRequestDuration.WithLabelValues(outcomeLabel(err)).Observe(time.Since(start).Seconds())
	if err != nil {
		s.log.Warn().Err(err).Msg("workflow webhook failed, using mock generator")
		metrics.VisualizationRequestsTotal.WithLabelValues("fallback").Inc()
		return mockVisualization(req), nil
	}

	metrics.VisualizationRequestsTotal.WithLabelValues("ok").Inc()
	return result, nil
}

func outcomeLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// mockVisualization reproduces the hardcoded keyword heuristics the console
// shipped with before the workflow engine existed. It keeps the chat usable
// when the webhook is down.
func mockVisualization(req domain.VisualizationRequest) *domain.VisualizationResult {
	query := strings.ToLower(req.Query)

	chartType := mockChartType(query)
	result := &domain.VisualizationResult{
		SQLQuery:  mockSQL(query),
		ChartType: chartType,
		XAxis:     mockXAxis(query),
		YAxis:     mockYAxis(query),
		Fallback:  true,
	}
	result.Cols = []domain.Column{
		{Name: result.XAxis, BaseType: "type/Text"},
		{Name: result.YAxis, BaseType: "type/Integer"},
	}
	result.Rows = mockRows(chartType)
	return result
}

func mockChartType(query string) string {
	switch {
	case containsAny(query, "évolution", "tendance", "au fil du temps"):
		return domain.ChartLine
	case containsAny(query, "répartition", "pourcentage"):
		return domain.ChartPie
	default:
		return domain.ChartBar
	}
}

func mockSQL(query string) string {
	switch {
	case strings.Contains(query, "absences") && strings.Contains(query, "département"):
		return "SELECT department, COUNT(*) AS absence_count FROM absences WHERE year = 2025 GROUP BY department"
	case strings.Contains(query, "utilisateurs") && strings.Contains(query, "rôle"):
		return "SELECT role, COUNT(*) AS user_count FROM users GROUP BY role"
	default:
		return "SELECT category, SUM(amount) AS total FROM transactions GROUP BY category"
	}
}

func mockXAxis(query string) string {
	switch {
	case strings.Contains(query, "département"):
		return "department"
	case containsAny(query, "mois", "année"):
		return "date"
	default:
		return "category"
	}
}

func mockYAxis(query string) string {
	switch {
	case strings.Contains(query, "absences"):
		return "absence_count"
	case containsAny(query, "revenus", "montant"):
		return "total_amount"
	default:
		return "count"
	}
}

func mockRows(chartType string) [][]any {
	if chartType == domain.ChartPie {
		return [][]any{
			{"Admin", 15},
			{"Utilisateur", 85},
		}
	}
	if chartType == domain.ChartLine {
		return [][]any{
			{"Jan", 12}, {"Fév", 19}, {"Mar", 15},
			{"Avr", 25}, {"Mai", 22}, {"Juin", 30},
		}
	}
	return [][]any{
		{"IT", 25}, {"HR", 15}, {"Finance", 20}, {"Marketing", 18},
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
