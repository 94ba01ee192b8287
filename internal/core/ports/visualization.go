package ports

import (
	"context"

	"github.com/monsite/console-api/internal/core/domain"
)

// WorkflowClient is the boundary to the external natural-language-to-data
// workflow engine. It is treated as an opaque translator: JSON in, tabular
// result out, single shot, no retries.
type WorkflowClient interface {
	Generate(ctx context.Context, req domain.VisualizationRequest) (*domain.VisualizationResult, error)
}

// VisualizationService validates and forwards natural-language queries,
// falling back to a deterministic local generator when the engine fails.
type VisualizationService interface {
	Generate(ctx context.Context, req domain.VisualizationRequest) (*domain.VisualizationResult, error)
}
