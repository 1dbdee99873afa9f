package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s22625/lazyq/internal/protocol"
	"github.com/s22625/lazyq/internal/session"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print a one-shot snapshot of the daemon state",
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

			state, err := c.Status()
			if err != nil {
				return err
			}
			printStatus(state)
			return nil
		},
	}
}

func printStatus(state *protocol.State) {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	defer w.Flush()

	for _, item := range session.Tree(state, nil) {
		if item.Kind == session.ItemGroup {
			group := state.Groups[item.Group]
			status := ""
			if group != nil && group.Status == protocol.GroupPaused {
				status = " (paused)"
			}
			fmt.Fprintf(w, "%s%s\n", item.Group, status)
			continue
		}
		task := state.Tasks[item.TaskID]
		if task == nil {
			continue
		}
		status := string(task.Status)
		if task.Status == protocol.StatusDone {
			status = string(task.Result)
		}
		fmt.Fprintf(w, "  %d\t%s\t%s\n", task.ID, status, task.Command)
	}
}
