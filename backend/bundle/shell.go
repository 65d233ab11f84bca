package bundle

import (
	"context"
	"fmt"

	"github.com/viant/gosh"
	"github.com/viant/gosh/runner/local"
)

type localShell struct {
	service *gosh.Service
}

func (s *localShell) Run(ctx context.Context, command string) (string, int, error) {
	return s.service.Run(ctx, command)
}

// NewLocalShell creates a shell running commands on the local host
func NewLocalShell(ctx context.Context) (Shell, error) {
	service, err := gosh.New(ctx, local.New())
	if err != nil {
		return nil, fmt.Errorf("failed to start shell: %w", err)
	}
	return &localShell{service: service}, nil
}
