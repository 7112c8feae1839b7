package ports

import (
	"context"

	"github.com/aretw0/contable/pkg/domain"
)

// Launcher hosts the application on the target address.
// Launch blocks until ctx is cancelled or the server fails. A cancelled ctx is a
// graceful stop and must return nil.
type Launcher interface {
	Launch(ctx context.Context, target domain.LaunchTarget) error
}

// Requirer is implemented by launchers that depend on external binaries.
// The sequencer checks them before launching.
type Requirer interface {
	Requires() []string
}
