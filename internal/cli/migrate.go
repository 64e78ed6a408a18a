package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/lavadero-api/internal/infrastructure/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Aplica las migraciones pendientes",
	RunE: func(cmd *cobra.Command, args []string) error {
		applied, err := postgres.Migrate(cmd.Context(), env.Pool)
		if err != nil {
			return fmt.Errorf("migrar: %w", err)
		}
		if len(applied) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Base de datos al día")
			return nil
		}
		for _, name := range applied {
			fmt.Fprintf(cmd.OutOrStdout(), "aplicada %s\n", name)
		}
		env.Log.Info().Strs("applied", applied).Msg("migraciones aplicadas")
		return nil
	},
}
