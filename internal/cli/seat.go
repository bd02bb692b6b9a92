package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSeatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seat",
		Short: "Seat and buy-in commands",
	}

	cmd.AddCommand(newSeatAddCmd())
	cmd.AddCommand(newSeatBuyInsCmd())
	cmd.AddCommand(newSeatRemoveCmd())

	return cmd
}

func newSeatAddCmd() *cobra.Command {
	var playerID, playerName string
	var buyIns int

	cmd := &cobra.Command{
		Use:   "add <game-id>",
		Short: "Seat a player at a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if playerID == "" && playerName == "" {
				return fmt.Errorf("--player or --name is required")
			}

			req := map[string]any{"game_id": args[0]}
			if playerID != "" {
				req["player_id"] = playerID
			}
			if playerName != "" {
				req["player_name"] = playerName
			}
			if buyIns > 0 {
				req["buy_in_count"] = buyIns
			}

			var result GamePlayer

			if err := client.Post("/api/v1/game-players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&playerID, "player", "", "Existing player ID")
	cmd.Flags().StringVar(&playerName, "name", "", "Player name (created if unknown)")
	cmd.Flags().IntVar(&buyIns, "buy-ins", 0, "Initial buy-in count (default 1)")

	return cmd
}

func newSeatBuyInsCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "buyins <seat-id>",
		Short: "Update a seat's buy-in count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--count must be at least 1")
			}

			req := map[string]int{"buy_in_count": count}
			var result GamePlayer

			if err := client.Patch(fmt.Sprintf("/api/v1/game-players/%s", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "New buy-in count (required)")
	_ = cmd.MarkFlagRequired("count")

	return cmd
}

func newSeatRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <seat-id>",
		Short: "Remove a player from a game before completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Delete(fmt.Sprintf("/api/v1/game-players/%s", args[0])); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Seat removed")
			return nil
		},
	}
}
