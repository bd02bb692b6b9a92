package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game session commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameActiveCmd())
	cmd.AddCommand(newGameListCmd())
	cmd.AddCommand(newGameSettleCmd())
	cmd.AddCommand(newGameCompleteCmd())
	cmd.AddCommand(newGameCancelCmd())
	cmd.AddCommand(newGameDeleteCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var buyIn, chips int

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start a new game session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]int{}
			if buyIn > 0 {
				req["default_buy_in"] = buyIn
			}
			if chips > 0 {
				req["chips_per_buy_in"] = chips
			}

			var result Game

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&buyIn, "buy-in", 0, "Buy-in amount (default 500)")
	cmd.Flags().IntVar(&chips, "chips", 0, "Chips per buy-in (enables chip mode)")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a game and its roster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameDetail

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameActiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "Show the current open game",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameDetail

			if err := client.Get("/api/v1/games/active", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all games, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Game

			if err := client.Get("/api/v1/games", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameSettleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "settle <id>",
		Short: "Move a game into the settling phase",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/settle", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete <id> <player=value>...",
		Short: "Complete a game with each player's ending stack",
		Long: `Complete a game by submitting every seated player's ending stack.

Each argument is a player ID and value pair, for example:

  pokernight game complete g1 p-alice=300 p-bob=1200 p-carol=0`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			gameID := args[0]

			entries := make([]map[string]any, 0, len(args)-1)
			for _, arg := range args[1:] {
				playerID, valueStr, ok := strings.Cut(arg, "=")
				if !ok {
					return fmt.Errorf("invalid entry %q: expected player=value", arg)
				}

				value, err := strconv.ParseFloat(valueStr, 64)
				if err != nil {
					return fmt.Errorf("invalid value for %s: %w", playerID, err)
				}

				entries = append(entries, map[string]any{
					"player_id": playerID,
					"value":     value,
				})
			}

			req := map[string]any{"ending_values": entries}
			var result CompleteGameResult

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/complete", gameID), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	return cmd
}

func newGameCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <id>",
		Short: "Cancel a game without settling",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/cancel", args[0]), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game cancelled")
			return nil
		},
	}
}

func newGameDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a closed game and roll back its ledger effects",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/games/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Game deleted")
			return nil
		},
	}
}
