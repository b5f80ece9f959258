package ports

import (
	"context"

	"go.trai.ch/lessc/internal/core/domain"
)

// Emitter attaches compiled stylesheets to the build output.
//
//go:generate go run go.uber.org/mock/mockgen -source=emitter.go -destination=mocks/mock_emitter.go -package=mocks
type Emitter interface {
	// Emit writes the stylesheet and its source map.
	Emit(ctx context.Context, sheet domain.Stylesheet) error
}
