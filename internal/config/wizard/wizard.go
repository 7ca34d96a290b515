package wizard

import (
	"context"
	"fmt"

	"github.com/imamik/hostforge/internal/config"
)

// Run collects a provisioning request interactively. Prompt order is fixed:
// IP, domain, MySQL root password, phpMyAdmin password, Samba username,
// Samba password. The context is used for cancellation support (Ctrl+C).
func Run(ctx context.Context) (*config.Request, error) {
	req := &config.Request{}

	if err := runNetworkGroup(ctx, req); err != nil {
		return nil, fmt.Errorf("network: %w", err)
	}

	if err := runDatabaseGroup(ctx, req); err != nil {
		return nil, fmt.Errorf("database: %w", err)
	}

	if err := runFileShareGroup(ctx, req); err != nil {
		return nil, fmt.Errorf("file share: %w", err)
	}

	req.ApplyDefaults()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	return req, nil
}
