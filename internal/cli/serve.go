package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lmarten/coursemap/pkg/catalog"
	pkgio "github.com/lmarten/coursemap/pkg/io"
	"github.com/lmarten/coursemap/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr     string // listen address (config default when empty)
	listing  string // group this raw listing file instead of importing JSON
	snapshot string // serve a named snapshot from the configured store
}

// newServeCmd creates the serve command, which exposes a grouped catalog
// over HTTP. The catalog comes from an exported JSON file (positional
// argument, default export path otherwise), from a raw listing grouped on
// startup with --listing, or from a named snapshot with --snapshot.
func newServeCmd() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve [catalog.json]",
		Short: "Serve a grouped catalog over HTTP",
		Long: `Serve a grouped catalog over HTTP.

Endpoints:
  GET  /healthz              liveness probe
  GET  /api/subjects         the full ordered subject -> courses mapping
  GET  /api/subjects/{code}  one subject with its course numbers
  POST /api/group            group a raw listing sent as the request body

Examples:
  coursemap serve                          # serve subject_data.json
  coursemap serve fall.json --addr :9090
  coursemap serve --listing courses.txt
  coursemap serve --snapshot fall-2026`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			var arg string
			if len(args) == 1 {
				arg = args[0]
			}
			return runServe(c.Context(), &opts, arg)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default from config, \":8080\")")
	cmd.Flags().StringVar(&opts.listing, "listing", "", "group this raw listing file instead of importing JSON")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "serve a named snapshot from the configured store")

	return cmd
}

// runServe loads the catalog, then blocks serving it until ctx is canceled.
func runServe(ctx context.Context, opts *serveOpts, arg string) error {
	logger := loggerFromContext(ctx)
	cfg := configFromContext(ctx)

	c, source, err := serveCatalog(ctx, opts, arg)
	if err != nil {
		return err
	}

	addr := opts.addr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.New(c, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	logger.Infof("Serving %s on %s (%d subjects, %d courses)", source, addr, c.SubjectCount(), c.CourseCount())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("Server stopped")
		return ctx.Err()
	}
}

// serveCatalog resolves the catalog to serve and a human-readable name for
// its source. Exactly one source may be selected.
func serveCatalog(ctx context.Context, opts *serveOpts, arg string) (*catalog.Catalog, string, error) {
	if opts.listing != "" && opts.snapshot != "" {
		return nil, "", errors.New("cannot combine --listing with --snapshot")
	}
	if arg != "" && (opts.listing != "" || opts.snapshot != "") {
		return nil, "", errors.New("cannot combine a catalog argument with --listing or --snapshot")
	}

	switch {
	case opts.listing != "":
		in, err := openInput(opts.listing)
		if err != nil {
			return nil, "", err
		}
		defer in.Close()
		c, err := catalog.ParseReader(in)
		if err != nil {
			return nil, "", err
		}
		return c, fmt.Sprintf("listing %s", opts.listing), nil

	case opts.snapshot != "":
		st, closeStore, err := newStore(ctx)
		if err != nil {
			return nil, "", err
		}
		defer closeStore()
		snap, err := st.Get(ctx, opts.snapshot)
		if err != nil {
			return nil, "", err
		}
		return snap.Catalog, fmt.Sprintf("snapshot %s", snap.Name), nil

	default:
		path := arg
		if path == "" {
			path = configFromContext(ctx).Output
		}
		c, err := pkgio.ImportJSON(path)
		if err != nil {
			return nil, "", err
		}
		return c, path, nil
	}
}
