package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"studie-planner/config"
	"studie-planner/internal/model"
	"studie-planner/pkg/jwt"
)

func newTokenCommand() *cobra.Command {
	var (
		userID      string
		role        string
		householdID string
	)

	command := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if role != model.RoleStudent && role != model.RoleParent {
				return fmt.Errorf("role must be %s or %s", model.RoleStudent, model.RoleParent)
			}
			for name, id := range map[string]string{"user": userID, "household": householdID} {
				if _, err := uuid.Parse(id); err != nil {
					return fmt.Errorf("--%s must be a uuid: %w", name, err)
				}
			}

			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			token, err := jwt.NewManager(&cfg.Auth).GenerateToken(userID, role, householdID, 0)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	command.Flags().StringVar(&userID, "user", "", "user id")
	command.Flags().StringVar(&role, "role", model.RoleStudent, "student or parent")
	command.Flags().StringVar(&householdID, "household", "", "household id")
	_ = command.MarkFlagRequired("user")
	_ = command.MarkFlagRequired("household")

	return command
}
