package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/himanishpuri/beatmapdoc/pkg/beatmapdoc/model"
)

type upgradeResult struct {
	path    string
	from    model.Version
	skipped bool
}

func newUpgradeCommand(a *app) *cobra.Command {
	var jobs int
	cmd := &cobra.Command{
		Use:   "upgrade <file>...",
		Short: "Rewrite documents in the latest schema generation",
		Long: `upgrade loads every file, moves it onto the configured default grid and
saves it in place. Files already in the latest generation and on the default
grid are left untouched. Each file is replaced only after its new content
has been written completely.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results, err := a.upgrade(args, jobs)
			for _, r := range results {
				switch {
				case r.path == "":
				case r.skipped:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: up to date\n", r.path)
				default:
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s -> %s\n", r.path, r.from, model.CurrentVersion)
				}
			}
			return err
		},
	}
	cmd.Flags().IntVarP(&jobs, "jobs", "j", runtime.NumCPU(), "Files processed in parallel")
	return cmd
}

// upgrade handles each file in its own goroutine; a project is never shared
// between them. Results keep argument order; entries of failed files are zero.
func (a *app) upgrade(paths []string, jobs int) ([]upgradeResult, error) {
	results := make([]upgradeResult, len(paths))

	var group errgroup.Group
	if jobs > 0 {
		group.SetLimit(jobs)
	}
	for i, path := range paths {
		i, path := i, path
		group.Go(func() error {
			p, err := a.engine.Load(path)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			if !p.IsChanged {
				results[i] = upgradeResult{path: path, from: p.Version, skipped: true}
				return nil
			}
			from := p.Version
			if err := a.engine.Save(p); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = upgradeResult{path: path, from: from}
			return nil
		})
	}
	return results, group.Wait()
}
