package main

import (
	"fmt"

	"github.com/businesscontrol/portal/internal/models"
	"github.com/businesscontrol/portal/internal/repositories"
	"github.com/businesscontrol/portal/internal/services"
	"github.com/businesscontrol/portal/libs/auth/service"
	"github.com/businesscontrol/portal/libs/logger"
	"github.com/spf13/cobra"
)

var adminRequest models.CreateAdminRequest

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Create an administrator account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB(cmd.Context())
		if err != nil {
			return err
		}
		defer db.Close()

		tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)
		authService := services.NewAuthService(
			repositories.NewUserRepository(db, logger.Logger),
			repositories.NewUserTokenRepository(db),
			tokenGenerator,
			cfg.JWT.RefreshTokenExpiry,
			logger.Logger,
		)

		user, err := authService.CreateAdmin(cmd.Context(), &adminRequest)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created admin %s (id %d)\n", user.Email, user.ID)
		return nil
	},
}

func init() {
	createAdminCmd.Flags().StringVar(&adminRequest.Email, "email", "", "Email of the administrator")
	createAdminCmd.Flags().StringVar(&adminRequest.Name, "name", "", "Display name of the administrator")
	createAdminCmd.Flags().StringVar(&adminRequest.Password, "password", "", "Password, at least 6 characters")
	_ = createAdminCmd.MarkFlagRequired("email")
	_ = createAdminCmd.MarkFlagRequired("name")
	_ = createAdminCmd.MarkFlagRequired("password")
}
