package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/cmlabs-hris/payroll-engine/internal/domain/audit"
	"github.com/cmlabs-hris/payroll-engine/internal/pkg/jwt"
)

func tokenCmd() *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an API access token for --actor-id",
		RunE: func(cmd *cobra.Command, args []string) error {
			id := viper.GetString("actor-id")
			if id == "" {
				return fmt.Errorf("--actor-id required")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			svc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
			token, exp, err := svc.GenerateAccessToken(audit.Actor{ID: id, Name: viper.GetString("actor-name")}, audit.Role(role))
			if err != nil {
				return err
			}

			if viper.GetBool("json") {
				return printJSON(map[string]any{"access_token": token, "expires_at": exp, "role": role})
			}
			fmt.Println(token)
			fmt.Printf("expires %s\n", time.Unix(exp, 0).UTC().Format(time.RFC3339))
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(audit.RoleViewer), "admin, hr or viewer")
	return cmd
}
