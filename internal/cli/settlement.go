package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSettlementCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settlement",
		Short: "Settlement commands",
	}

	cmd.AddCommand(newSettlementListCmd())
	cmd.AddCommand(newSettlementGameCmd())

	return cmd
}

func newSettlementListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all settlements, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Settlement

			if err := client.Get("/api/v1/settlements", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSettlementGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <game-id>",
		Short: "List a game's settlement plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Settlement

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s/settlements", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
