package commands

import (
	"github.com/arnavshah/sandwich-orders-api/pkg/config"
	"github.com/spf13/cobra"
)

var cfg *config.Config

// Execute runs the ordersctl command tree
func Execute() error {
	root := &cobra.Command{
		Use:          "ordersctl",
		Short:        "Operator tools for the sandwich orders API",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadDotEnv()
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			return nil
		},
	}

	root.AddCommand(keygenCmd(), datesCmd())
	return root.Execute()
}
