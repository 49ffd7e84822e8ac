package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/oakwood-commons/dtable/internal/config"
	"github.com/oakwood-commons/dtable/internal/filter"
	"github.com/oakwood-commons/dtable/internal/pager"
	"github.com/oakwood-commons/dtable/internal/render"
	"github.com/oakwood-commons/dtable/internal/ui"
	"github.com/oakwood-commons/dtable/pkg/datatable"
	"github.com/oakwood-commons/dtable/pkg/loader"
	"github.com/oakwood-commons/dtable/pkg/logger"
	"github.com/oakwood-commons/dtable/pkg/settings"
)

// errShowHelp is returned by readInput when there is no file argument and
// stdin is a terminal.
var errShowHelp = errors.New("no input provided")

var (
	interactive    bool
	output         string
	configFile     string
	page           int
	rowsPerPage    int
	sortOrder      sortFlag
	filterExpr     string
	searchTerm     string
	columnList     []string
	noPagination   bool
	hideCheckboxes bool
	responsive     bool
	selectAll      bool
	printSelected  bool
	themeName      string
	noColor        bool
	width          int
	height         int
	debug          bool
)

var rootCmd = &cobra.Command{
	Use:   settings.CliBinaryName + " [file]",
	Short: settings.CliBinaryName + " - sortable, paginated data tables in the terminal",
	Long:  longHelp(),
	Example: `  dtable people.json
  dtable people.yaml --sort age:desc --rows-per-page 5 --page 2
  kubectl get pods -o json | dtable --columns metadata,status -o markdown
  dtable people.json --filter 'row.age > 30 && row.active' -o csv
  dtable people.json -i --print-selected -o json`,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
			return fmt.Errorf("%w: %w", errUsage, err)
		}
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		// debug => zap.DebugLevel (-1), else zap.InfoLevel (0)
		var level int8
		if debug {
			level = -1
		}
		lgr := logger.Get(level)
		lgr = logger.WithValues(lgr, logger.RootCommandKey, settings.CliBinaryName, logger.SubCommandKey, cmd.Name())

		run := settings.NewCliParams()
		run.MinLogLevel = level
		run.ConfigPath = config.ResolvePath(configFile)
		run.Interactive = interactive
		run.NoColor = noColor
		run.Width = width

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		ctx = logger.WithLogger(ctx, lgr)
		cmd.SetContext(settings.IntoContext(ctx, run))
	},
	RunE: runRoot,
}

func init() { //nolint:gochecknoinits
	f := rootCmd.Flags()
	f.BoolVarP(&interactive, "interactive", "i", false, "start the interactive table")
	f.StringVarP(&output, "output", "o", string(render.FormatTable), "output format: table|csv|json|yaml|markdown|html")
	rootCmd.PersistentFlags().StringVarP(&configFile, "config-file", "c", "", "path to a YAML or TOML config file (default $XDG_CONFIG_HOME/dtable/config.yaml)")
	f.IntVar(&page, "page", 1, "page to show")
	f.IntVar(&rowsPerPage, "rows-per-page", 0, "rows per page (default from config)")
	f.Var(&sortOrder, "sort", "sort by a column, e.g. age or age:desc")
	f.StringVar(&filterExpr, "filter", "", "CEL expression over 'row' that keeps matching rows, e.g. 'row.age > 30'")
	f.StringVar(&searchTerm, "search", "", "keep rows where any visible column contains the text (case-insensitive)")
	f.StringSliceVar(&columnList, "columns", nil, "columns to show, in order (comma separated)")
	f.BoolVar(&noPagination, "no-pagination", false, "show all rows on one page")
	f.BoolVar(&hideCheckboxes, "hide-checkboxes", false, "hide selection checkboxes")
	f.BoolVar(&responsive, "responsive", false, "stack rows as label/value cards on narrow terminals")
	f.BoolVar(&selectAll, "select-all", false, "select every row of the starting page")
	f.BoolVar(&printSelected, "print-selected", false, "print only the selected rows (with -i, after the table closes)")
	f.StringVar(&themeName, "theme", "", "theme name (default from config; see 'dtable config themes')")
	f.BoolVar(&noColor, "no-color", false, "disable color output")
	f.IntVar(&width, "width", 0, "output width in columns (default terminal width)")
	f.IntVar(&height, "height", 0, "interactive height in rows (default terminal height)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log debug output to stderr")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
	rootCmd.AddCommand(versionCmd, configCmd)
}

// Execute runs the CLI with ctx. Use ExitCode to map the error to a process
// exit status.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// ExitCode is 0 for nil, 2 for usage and validation errors and 1 otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var themeErr ui.ThemeSelectionError
	switch {
	case errors.Is(err, errUsage),
		errors.Is(err, config.ErrInvalidConfig),
		errors.Is(err, render.ErrUnknownFormat),
		errors.Is(err, pager.ErrInvalidPerPage),
		errors.As(err, &themeErr):
		return 2
	}
	return 1
}

func longHelp() string {
	cfg, err := config.Load("")
	if err != nil {
		return ""
	}
	about := cfg.App.About
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n\n", about.Name, about.Description)
	b.WriteString("Reads an array of records as JSON, YAML, TOML, NDJSON or multi-document\n")
	b.WriteString("YAML from the file argument or piped stdin and prints the current page,\n")
	b.WriteString("or opens it interactively with -i.\n\n")
	for _, d := range about.Details {
		b.WriteString(d + "\n")
	}
	return b.String()
}

func runRoot(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	lgr := logger.FromContext(ctx)
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	theme, err := ui.SelectTheme(cfg, themeName)
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(output)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("page") && page < 1 {
		return usageErrorf("--page must be at least 1, got %d", page)
	}

	rows, source, err := readInput(cmd, args)
	if errors.Is(err, errShowHelp) {
		return cmd.Help()
	}
	if err != nil {
		return err
	}
	loader.EnsureIDs(rows)
	lgr.V(1).Info("loaded input", logger.InputKey, source, logger.RowsKey, len(rows))

	store, err := buildStore(cmd, cfg, rows)
	if err != nil {
		return err
	}
	if err := validateSort(store, sortOrder.state); err != nil {
		return err
	}
	query, ev, err := buildQuery()
	if err != nil {
		return err
	}

	if interactive {
		return runInteractive(ctx, cmd.OutOrStdout(), store, format, ui.Config{
			AppName:   cfg.App.About.Name,
			Theme:     theme,
			NoColor:   noColor,
			Page:      page,
			Evaluator: ev,
			Query:     query,
			Sort:      sortOrder.state,
			SelectAll: selectAll,
			Logger:    *lgr,
		})
	}

	name := themeName
	if strings.TrimSpace(name) == "" {
		name = cfg.UI.Theme.Default
	}
	themeCfg := cfg.UI.Themes[strings.TrimSpace(name)]
	return printPage(cmd.OutOrStdout(), store, format, query, render.PageOptions{
		NoColor:     noColor,
		Width:       outputWidth(),
		HeaderColor: string(themeCfg.HeaderFG),
		BorderColor: string(themeCfg.BorderColor),
	}, *lgr)
}

// readInput loads rows from the file argument ("-" is stdin) or from piped
// stdin. Empty input is an empty table.
func readInput(cmd *cobra.Command, args []string) ([]datatable.Row, string, error) {
	var (
		rows   []datatable.Row
		source string
		err    error
	)
	switch {
	case len(args) == 1 && args[0] != "-":
		source = args[0]
		rows, err = loader.LoadFile(source)
	case len(args) == 0 && !stdinIsPiped():
		return nil, "", errShowHelp
	default:
		source = "stdin"
		rows, err = loader.LoadReader(cmd.InOrStdin())
	}
	if errors.Is(err, loader.ErrEmptyInput) {
		return []datatable.Row{}, source, nil
	}
	if err != nil {
		return nil, source, err
	}
	return rows, source, nil
}

// buildStore layers the flags over the configured columns and options.
func buildStore(cmd *cobra.Command, cfg config.File, rows []datatable.Row) (*datatable.Store, error) {
	cols, err := cfg.Table.BuildColumns()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", config.ErrInvalidConfig, err)
	}
	if cols == nil {
		cols = datatable.InferColumns(rows)
	}
	if cols, err = selectColumns(cols, columnList); err != nil {
		return nil, err
	}

	opts := cfg.Table.Options.Apply(datatable.Options{})
	if cmd.Flags().Changed("rows-per-page") {
		if err := (pager.Config{Page: 1, PerPage: rowsPerPage}).Validate(); err != nil {
			return nil, fmt.Errorf("--rows-per-page: %w", err)
		}
		opts.RowsPerPage = rowsPerPage
	}
	if noPagination {
		opts.Pagination = false
	}
	if hideCheckboxes {
		opts.SelectableRowsHideCheckboxes = true
	}
	if responsive {
		opts.Responsive = true
	}
	return datatable.NewStore(rows, cols, opts), nil
}

func validateSort(store *datatable.Store, s datatable.SortState) error {
	if s.Field == "" {
		return nil
	}
	col, ok := store.Column(s.Field)
	if !ok {
		return usageErrorf("cannot sort by unknown column %q", s.Field)
	}
	if !col.Options.Sort {
		return usageErrorf("column %q is not sortable", s.Field)
	}
	return nil
}

func buildQuery() (filter.Query, *filter.Evaluator, error) {
	q := filter.Query{Search: strings.TrimSpace(searchTerm)}
	ev, err := filter.NewEvaluator()
	if err != nil {
		return q, nil, err
	}
	if expr := strings.TrimSpace(filterExpr); expr != "" {
		pred, err := ev.Compile(expr)
		if err != nil {
			return q, nil, fmt.Errorf("%w: --filter: %w", errUsage, err)
		}
		q.Predicate = pred
	}
	return q, ev, nil
}

// outputWidth is --width, else the terminal width, else 0 (unknown).
func outputWidth() int {
	if width > 0 {
		return width
	}
	w, _ := detectTerminalSize()
	return w
}

func printPage(w io.Writer, store *datatable.Store, format render.Format, query filter.Query, opts render.PageOptions, lgr logr.Logger) error {
	if query.Active() {
		rows, err := query.Apply(store.RowData(), store.Columns())
		if err != nil {
			return fmt.Errorf("%w: --filter: %w", errUsage, err)
		}
		store.SetRowData(rows)
	}
	tbl := datatable.NewTable(store, datatable.WithLogger(lgr), datatable.WithPage(page))
	defer tbl.Close()
	if s := sortOrder.state; s.Field != "" {
		tbl.SetSort(s.Field, s.Ascending)
	}
	if selectAll {
		tbl.SelectAll(true)
	}
	if printSelected {
		return writeRows(w, format, store, tbl.Selected(), opts)
	}
	return render.Page(w, format, tbl, opts)
}

func runInteractive(ctx context.Context, w io.Writer, store *datatable.Store, format render.Format, cfg ui.Config) error {
	cfg.Width, cfg.Height = width, height
	if cfg.Width <= 0 || cfg.Height <= 0 {
		dw, dh := detectTerminalSize()
		if cfg.Width <= 0 {
			cfg.Width = dw
		}
		if cfg.Height <= 0 {
			cfg.Height = dh
		}
	}
	if cfg.Width <= 0 {
		cfg.Width = defaultTermWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultTermHeight
	}

	progOpts, cleanup := getProgramOptions()
	defer cleanup()

	selected, err := ui.Run(ctx, store, cfg, progOpts...)
	if err != nil {
		return err
	}
	if !printSelected {
		return nil
	}
	return writeRows(w, format, store, selected, render.PageOptions{NoColor: cfg.NoColor, Width: cfg.Width})
}

// writeRows prints rows on a single page without checkboxes, using the
// columns of store.
func writeRows(w io.Writer, format render.Format, store *datatable.Store, rows []datatable.Row, opts render.PageOptions) error {
	o := store.Options()
	o.Pagination = false
	o.SelectableRowsHideCheckboxes = true
	o.OnRowClick = nil
	tbl := datatable.NewTable(datatable.NewStore(rows, store.Columns(), o))
	defer tbl.Close()
	return render.Page(w, format, tbl, opts)
}
