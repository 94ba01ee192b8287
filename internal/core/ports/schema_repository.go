package ports

import (
	"context"

	"github.com/monsite/console-api/internal/core/domain"
)

// SchemaRepository introspects the analytics database so the frontend can
// describe it to the workflow engine.
type SchemaRepository interface {
	Tables(ctx context.Context, schema string) ([]domain.SchemaTable, error)
}
