package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jhoicas/lavadero-api/internal/application/billing"
	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/infrastructure/postgres"
)

var timbradoCmd = &cobra.Command{
	Use:   "timbrado",
	Short: "Consultas sobre el timbrado",
}

var timbradoStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Estado del timbrado vigente",
	Long:  `Evalúa el timbrado contra la fecha de hoy en la zona horaria del negocio. Sale con código 1 si bloquea la facturación.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		checker := billing.NewTimbradoChecker(
			postgres.NewCompanyConfigRepository(env.Pool), time.Now, env.Cfg.App.Location(),
		)
		status, err := checker.Status(cmd.Context())
		if err != nil {
			return fmt.Errorf("consultar timbrado: %w", err)
		}
		printStatus(cmd.OutOrStdout(), status)
		if status.BlocksInvoicing {
			return fmt.Errorf("facturación bloqueada: %s", billing.Remediation)
		}
		return nil
	},
}

func init() {
	timbradoCmd.AddCommand(timbradoStatusCmd)
}

func printStatus(w io.Writer, s *dto.TimbradoStatusResponse) {
	fmt.Fprintf(w, "%-12s %s\n", "Estado:", s.Status)
	if s.TimbradoNumber != "" {
		fmt.Fprintf(w, "%-12s %s\n", "Timbrado:", s.TimbradoNumber)
		fmt.Fprintf(w, "%-12s %s\n", "Vence:", s.ValidUntil)
		fmt.Fprintf(w, "%-12s %d\n", "Días:", s.DaysLeft)
	}
	if s.Warning != "" {
		fmt.Fprintf(w, "%-12s %s\n", "Aviso:", s.Warning)
	}
	if s.Error != "" {
		fmt.Fprintf(w, "%-12s %s\n", "Error:", s.Error)
	}
}
