package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s22625/lazyq/internal/client"
	"github.com/s22625/lazyq/internal/protocol"
)

func newAddCmd() *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "add [flags] -- command...",
		Short: "Enqueue a task without opening the dashboard",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			command := strings.Join(args, " ")
			if strings.TrimSpace(command) == "" {
				return fmt.Errorf("empty command")
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			c, err := dial(cfg)
			if err != nil {
				return err
			}
			defer c.Close()

			path, _ := os.Getwd()
			return c.Add(client.AddOptions{
				Command: command,
				Path:    path,
				Group:   group,
			})
		},
	}

	cmd.Flags().StringVarP(&group, "group", "g", protocol.DefaultGroup, "Group to enqueue the task in")
	return cmd
}
