// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/lessc/internal/adapters/config"
	_ "go.trai.ch/lessc/internal/adapters/engine/inline"
	_ "go.trai.ch/lessc/internal/adapters/fs"
	_ "go.trai.ch/lessc/internal/adapters/lock"
	_ "go.trai.ch/lessc/internal/adapters/logger"
	_ "go.trai.ch/lessc/internal/adapters/telemetry/progrock"
	// Register app nodes.
	_ "go.trai.ch/lessc/internal/app"
)
