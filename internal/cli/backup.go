package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/himanishpuri/beatmapdoc/pkg/utils"
)

func newBackupCommand(a *app) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "backup <file> <dest>",
		Short: "Write a copy of a document in the latest generation",
		Long:  `backup leaves <file> untouched and writes its content to <dest>.`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, dest := args[0], args[1]
			if !force && utils.FileExists(dest) {
				return fmt.Errorf("%s already exists, use --force to replace it", dest)
			}
			p, err := a.engine.Load(src)
			if err != nil {
				return err
			}
			if err := a.engine.SaveAsBackup(p, dest); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s\n", src, dest)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Replace <dest> when it exists")
	return cmd
}
