package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/saturnines/zero-e2e/pkg/fixtures"
	"github.com/saturnines/zero-e2e/pkg/scenario"
)

func newScenariosCmd(a *app) *cobra.Command {
	var (
		only []string
		list bool
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "Run the end-to-end scenarios and clean up afterwards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			selected, err := scenario.Select(only...)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if list {
				for _, s := range selected {
					fmt.Fprintf(out, "%-32s %s\n", s.Name, s.Description)
				}
				return nil
			}

			set, err := fixtures.Load(a.cfg.Fixtures.Users, a.cfg.Fixtures.Albums)
			if err != nil {
				return err
			}
			client, err := a.api()
			if err != nil {
				return err
			}

			env := scenario.NewEnv(client, set, a.logger)
			outcomes := scenario.Run(cmd.Context(), env, selected)
			for _, o := range outcomes {
				if o.Passed() {
					fmt.Fprintf(out, "PASS %s (%s)\n", o.Name, o.Duration.Round(time.Millisecond))
				} else {
					fmt.Fprintf(out, "FAIL %s: %v\n", o.Name, o.Err)
				}
			}

			if n := scenario.Failed(outcomes); n > 0 {
				return fmt.Errorf("%d of %d scenarios failed", n, len(outcomes))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&only, "only", nil, "run only these scenarios (comma separated)")
	cmd.Flags().BoolVar(&list, "list", false, "list scenarios without running them")
	return cmd
}
