package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/lavadero-api/internal/application/auth"
	"github.com/jhoicas/lavadero-api/internal/application/dto"
	"github.com/jhoicas/lavadero-api/internal/domain/entity"
	"github.com/jhoicas/lavadero-api/internal/infrastructure/postgres"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Gestión de usuarios",
}

var userCreateCmd = &cobra.Command{
	Use:   "create [username]",
	Short: "Crea un usuario (el primer admin se da de alta por aquí)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		name, _ := cmd.Flags().GetString("name")
		role, _ := cmd.Flags().GetString("role")

		uc := auth.NewAuthUseCase(postgres.NewUserRepository(env.Pool), auth.JWTConfig{
			Secret:     env.Cfg.JWT.Secret,
			ExpMinutes: env.Cfg.JWT.Expiration,
			Issuer:     env.Cfg.JWT.Issuer,
		})
		user, err := uc.RegisterUser(cmd.Context(), dto.RegisterRequest{
			Username: args[0],
			Password: password,
			Name:     name,
			Role:     role,
		})
		if err != nil {
			return fmt.Errorf("crear usuario: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Usuario %s creado (id %s, rol %s)\n", user.Username, user.ID, user.Role)
		return nil
	},
}

func init() {
	userCreateCmd.Flags().String("password", "", "contraseña (mínimo 8 caracteres)")
	userCreateCmd.Flags().String("name", "", "nombre visible")
	userCreateCmd.Flags().String("role", entity.RoleCashier, "rol: admin | cajero")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
}
