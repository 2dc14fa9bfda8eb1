package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arnavshah/sandwich-orders-api/pkg/auth"
	"github.com/arnavshah/sandwich-orders-api/pkg/database"
	"github.com/spf13/cobra"
)

func keygenCmd() *cobra.Command {
	var (
		register  bool
		rateLimit int
	)

	cmd := &cobra.Command{
		Use:   "keygen <accountID>",
		Short: "Print the API key for a family account",
		Long: "Print the API key for a family account. The API only accepts registered keys:\n" +
			"pass --register to store it, or create it through POST /admin/keys instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			accountID := args[0]
			if strings.Contains(accountID, ".") {
				return errors.New("account id cannot contain '.'")
			}
			if cfg.APIMasterSecret == "" {
				return errors.New("API_MASTER_SECRET not found in environment or .env")
			}

			key := auth.New(cfg.JWTSecret, cfg.APIMasterSecret).GenerateHMACKey(accountID)
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Generated Key for %s:\n%s\n", accountID, key)

			if !register {
				fmt.Fprintln(out, "Not registered: run again with --register or use POST /admin/keys before handing it out.")
				return nil
			}

			db, err := database.Open(database.Options{DatabaseURL: cfg.DatabaseURL, DataPath: cfg.DataPath})
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			rec := database.APIKey{Key: key, Name: accountID, KeyPreview: auth.KeyPreview(key), RateLimit: rateLimit}
			if err := db.Create(&rec).Error; err != nil {
				return fmt.Errorf("could not register key (already registered?): %w", err)
			}
			fmt.Fprintf(out, "Registered as key %d with a daily limit of %d requests.\n", rec.ID, rec.RateLimit)
			return nil
		},
	}

	cmd.Flags().BoolVar(&register, "register", false, "store the key in the database so the API accepts it")
	cmd.Flags().IntVar(&rateLimit, "rate-limit", 10000, "daily request limit for a registered key")
	return cmd
}
