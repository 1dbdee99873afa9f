package cli

import (
	"github.com/spf13/cobra"
)

func newCleanCmd() *cobra.Command {
	var group string
	var successfulOnly bool

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove finished tasks from the daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			c, err := dial(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			return c.Clean(group, successfulOnly)
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", "", "Only clean this group (default: all groups)")
	cmd.Flags().BoolVar(&successfulOnly, "successful-only", false, "Keep failed tasks around")
	return cmd
}
