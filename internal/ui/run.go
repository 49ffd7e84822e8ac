package ui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/oakwood-commons/dtable/pkg/datatable"
)

// Run shows store interactively until the user quits or ctx is cancelled,
// and returns the rows selected at exit. Extra ProgramOptions (e.g. custom
// IO) are passed to tea.NewProgram.
func Run(ctx context.Context, store *datatable.Store, cfg Config, opts ...tea.ProgramOption) ([]datatable.Row, error) {
	var tableOpts []datatable.Option
	if cfg.Logger.GetSink() != nil {
		tableOpts = append(tableOpts, datatable.WithLogger(cfg.Logger))
	}
	tbl := datatable.NewTable(store, tableOpts...)
	defer tbl.Close()

	m := NewModel(tbl, cfg)
	defer m.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	if cfg.Width > 0 && cfg.Height > 0 {
		opts = append(opts, tea.WithWindowSize(cfg.Width, cfg.Height))
	}
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		if ctx.Err() != nil {
			return tbl.Selected(), ctx.Err()
		}
		return nil, err
	}
	return tbl.Selected(), nil
}
