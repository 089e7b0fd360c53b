// Copyright (c) 2026 AdAway Team
// AdAway - hosts sources store
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adaway/adaway/internal/db"
	"github.com/adaway/adaway/internal/logging"
)

// Run starts the interactive hosts sources editor and blocks until the
// user quits or ctx is cancelled. The store stays owned by the caller.
func Run(ctx context.Context, store db.Store) error {
	p := tea.NewProgram(newSourcesModel(ctx, store), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
