//go:build !linux

package input

import (
	"context"

	"go.uber.org/zap"
)

// Run is a no-op outside linux.
func Run(ctx context.Context, device string, sink Sink, log *zap.SugaredLogger) error {
	return ErrUnsupported
}
