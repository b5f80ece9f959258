package ports

import (
	"context"

	"go.trai.ch/lessc/internal/core/domain"
)

// SourceLoader discovers the source files of a project.
//
//go:generate go run go.uber.org/mock/mockgen -source=source_loader.go -destination=mocks/mock_source_loader.go -package=mocks
type SourceLoader interface {
	// Load returns every style source of the project as one file set.
	Load(ctx context.Context, project *domain.Project) (*domain.FileSet, error)
}
