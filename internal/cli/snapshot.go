package cli

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/lmarten/coursemap/pkg/store"
)

// storeDialTimeout bounds backend connection setup for remote stores.
const storeDialTimeout = 10 * time.Second

// newSnapshotCmd creates the snapshot command group for managing named,
// persisted catalogs. The backend (file, redis, or mongo) comes from the
// config file; the file backend is the default and needs no setup.
func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage named catalog snapshots",
		Long: `Manage named catalog snapshots.

A snapshot is a grouped catalog saved under a name so it can be listed,
inspected, or served later. The storage backend is configured in the
config file (file, redis, or mongo); the file backend is the default.`,
	}

	cmd.AddCommand(newSnapshotSaveCmd())
	cmd.AddCommand(newSnapshotListCmd())
	cmd.AddCommand(newSnapshotShowCmd())
	cmd.AddCommand(newSnapshotRmCmd())

	return cmd
}

// newSnapshotSaveCmd creates "snapshot save <name> [listing]": group a
// listing (file, stdin, or --sample) and persist the result under name.
func newSnapshotSaveCmd() *cobra.Command {
	var opts groupOpts

	cmd := &cobra.Command{
		Use:   "save <name> [listing]",
		Short: "Group a listing and save it as a named snapshot",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			logger := loggerFromContext(ctx)

			var arg string
			if len(args) == 2 {
				arg = args[1]
			}
			if opts.sample && arg != "" {
				return fmt.Errorf("cannot combine --sample with a listing argument")
			}

			cat, err := loadListing(&opts, arg)
			if err != nil {
				return err
			}

			st, closeStore, err := newStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			snap := store.NewSnapshot(args[0], cat)
			if err := st.Save(ctx, snap); err != nil {
				return err
			}
			logger.Infof("Saved snapshot %s (%d subjects, %d courses)", snap.Name, cat.SubjectCount(), cat.CourseCount())
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.sample, "sample", false, "group the built-in sample listing")

	return cmd
}

// newSnapshotListCmd creates "snapshot list": print all snapshots in
// creation order as a table.
func newSnapshotListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved snapshots",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			st, closeStore, err := newStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			snaps, err := st.List(ctx)
			if err != nil {
				return err
			}
			if len(snaps) == 0 {
				fmt.Println("no snapshots")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSUBJECTS\tCOURSES\tCREATED")
			for _, s := range snaps {
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
					s.Name, s.Catalog.SubjectCount(), s.Catalog.CourseCount(),
					s.CreatedAt.Local().Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

// newSnapshotShowCmd creates "snapshot show <name>": print the styled
// summary of one snapshot.
func newSnapshotShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a per-subject summary of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()

			st, closeStore, err := newStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			snap, err := st.Get(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(os.Stdout, renderSummary(snap.Catalog))
			return nil
		},
	}
}

// newSnapshotRmCmd creates "snapshot rm <name>": delete one snapshot.
func newSnapshotRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			ctx := c.Context()
			logger := loggerFromContext(ctx)

			st, closeStore, err := newStore(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			if err := st.Delete(ctx, args[0]); err != nil {
				return err
			}
			logger.Infof("Removed snapshot %s", args[0])
			return nil
		},
	}
}

// newStore builds the configured snapshot store backend. The returned
// close function releases any backend connection and is always non-nil.
func newStore(ctx context.Context) (store.Store, func(), error) {
	cfg := configFromContext(ctx).Store

	switch cfg.Backend {
	case "", "file":
		st, err := store.NewFileStore(cfg.Dir)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {}, nil

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		return store.NewRedisStore(client), func() { _ = client.Close() }, nil

	case "mongo":
		dialCtx, cancel := context.WithTimeout(ctx, storeDialTimeout)
		defer cancel()
		st, disconnect, err := store.DialMongoStore(dialCtx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		return st, func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), storeDialTimeout)
			defer cancel()
			_ = disconnect(closeCtx)
		}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s (want file, redis, or mongo)", cfg.Backend)
	}
}
