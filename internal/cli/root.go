// Package cli comandos de administración del lavadero (migraciones, usuarios, timbrado).
package cli

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/jhoicas/lavadero-api/internal/infrastructure/postgres"
	"github.com/jhoicas/lavadero-api/pkg/config"
	"github.com/jhoicas/lavadero-api/pkg/logger"
)

// Env dependencias compartidas por los comandos. Se abren en PersistentPreRunE.
type Env struct {
	Cfg  *config.Config
	Log  *logger.Logger
	Pool *pgxpool.Pool
}

var env Env

var rootCmd = &cobra.Command{
	Use:   "lavadero-admin",
	Short: "Administración del lavadero",
	Long: `lavadero-admin aplica migraciones, crea usuarios y consulta el estado del timbrado
sin pasar por la API HTTP. Lee la misma configuración (DB_*, DATABASE_URL, APP_TIMEZONE).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		env.Cfg = cfg
		env.Log = logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
		pool, err := postgres.NewPool(cmd.Context(), cfg.DB)
		if err != nil {
			return fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		env.Pool = pool
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if env.Pool != nil {
			env.Pool.Close()
		}
	},
}

// Execute ejecuta el comando raíz.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(timbradoCmd)
}
