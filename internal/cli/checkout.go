package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkout <score>",
		Short: "Look up the three-dart checkout for a score",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			score, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid score: %w", err)
			}

			var result CheckoutResult

			if err := client.Get(fmt.Sprintf("/api/v1/checkouts/%d", score), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
