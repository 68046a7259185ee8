package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match commands",
	}

	cmd.AddCommand(newMatchStartCmd())
	cmd.AddCommand(newMatchShowCmd())
	cmd.AddCommand(newMatchDartCmd())
	cmd.AddCommand(newMatchVisitCmd())
	cmd.AddCommand(newMatchUndoCmd())
	cmd.AddCommand(newMatchEndVisitCmd())
	cmd.AddCommand(newMatchPlayAgainCmd())
	cmd.AddCommand(newMatchResetCmd())
	cmd.AddCommand(newMatchListCmd())

	return cmd
}

func newMatchStartCmd() *cobra.Command {
	var mode, name1, name2 string
	var vsComputer bool
	var level int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new match",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]any{"mode": mode}
			if name1 != "" {
				req["name1"] = name1
			}
			if name2 != "" {
				req["name2"] = name2
			}
			if vsComputer {
				req["vs_computer"] = true
				req["computer_level"] = level
			}

			var result MatchState

			if err := client.Post("/api/v1/matches", req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&mode, "mode", "501", "Game mode: 301 or 501")
	cmd.Flags().StringVar(&name1, "name1", "", "Name for the first thrower")
	cmd.Flags().StringVar(&name2, "name2", "", "Name for the second thrower")
	cmd.Flags().BoolVar(&vsComputer, "computer", false, "Play against the computer")
	cmd.Flags().IntVar(&level, "level", 6, "Computer level 1-12 (with --computer)")

	return cmd
}

func newMatchShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <match-id>",
		Short: "Show the match scoreboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchState

			if err := client.Get(fmt.Sprintf("/api/v1/matches/%s", args[0]), &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMatchDartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dart <match-id> <value>",
		Short: "Score a single dart (0 is a miss)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid dart value: %w", err)
			}

			req := map[string]int{"value": value}
			var result MatchState

			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/darts", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMatchVisitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "visit <match-id> <total>",
		Short: "Score a whole visit as one total",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			total, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid visit total: %w", err)
			}

			req := map[string]int{"total": total}
			var result MatchState

			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/visits", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMatchUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <match-id>",
		Short: "Take back the last dart of the open visit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchState

			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/undo", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMatchEndVisitCmd() *cobra.Command {
	var busted bool

	cmd := &cobra.Command{
		Use:   "end-visit <match-id>",
		Short: "Commit the open visit and pass the turn",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"busted": busted}
			var result MatchState

			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/end-visit", args[0]), req, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&busted, "busted", false, "Mark the visit as a bust")

	return cmd
}

func newMatchPlayAgainCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play-again <match-id>",
		Short: "Start the next leg of a finished match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result MatchState

			if err := client.Post(fmt.Sprintf("/api/v1/matches/%s/play-again", args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}

func newMatchResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <match-id>",
		Short: "Delete the match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/matches/%s", args[0])); err != nil {
				return err
			}

			NewOutput(cfg.Output).PrintMessage("Match reset")
			return nil
		},
	}
}

func newMatchListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List your finished matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []MatchSummary

			if err := client.Get("/api/v1/matches", &result); err != nil {
				return err
			}

			NewOutput(cfg.Output).Print(result)
			return nil
		},
	}
}
