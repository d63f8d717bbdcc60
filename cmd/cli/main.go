package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	postgresRepo "github.com/coolvent/fieldops/internal/adapter/repository/postgres"
	"github.com/coolvent/fieldops/internal/domain"
	"github.com/coolvent/fieldops/internal/infrastructure/config"
	"github.com/coolvent/fieldops/internal/infrastructure/postgres"
	"github.com/coolvent/fieldops/internal/usecase"
)

var migrationsPath string

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldops-cli",
		Short: "FieldOps administration tool",
		Long:  `Administrative commands for the FieldOps service platform.`,
	}

	rootCmd.PersistentFlags().StringVar(&migrationsPath, "migrations", "internal/infrastructure/postgres/migrations", "Path to migration files")

	// Migration commands
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migrations",
	}

	migrateUpCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(false)
		},
	}

	migrateDownCmd := &cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		Run: func(cmd *cobra.Command, args []string) {
			runMigrations(true)
		},
	}

	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)

	// User commands
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management",
	}

	var email, name, password, role string
	userCreateCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user with one of the seven service-company roles",
		Run: func(cmd *cobra.Command, args []string) {
			createUser(email, name, password, role)
		},
	}
	userCreateCmd.Flags().StringVar(&email, "email", "", "User email")
	userCreateCmd.Flags().StringVar(&name, "name", "", "Display name")
	userCreateCmd.Flags().StringVar(&password, "password", "", "Password")
	userCreateCmd.Flags().StringVar(&role, "role", "", "Role (admin, manager, csr, sales, hr, technician, customer)")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")
	_ = userCreateCmd.MarkFlagRequired("role")

	userCmd.AddCommand(userCreateCmd)
	rootCmd.AddCommand(userCmd)

	// Role listing
	rolesCmd := &cobra.Command{
		Use:   "roles",
		Short: "List the closed role set",
		Run: func(cmd *cobra.Command, args []string) {
			listRoles()
		},
	}
	rootCmd.AddCommand(rolesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runMigrations(down bool) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if down {
		err = postgres.RunMigrationsDown(cfg.DatabaseURL, migrationsPath)
	} else {
		err = postgres.RunMigrations(cfg.DatabaseURL, migrationsPath)
	}
	if err != nil {
		fmt.Printf("Migration failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migration complete")
}

func createUser(email, name, password, role string) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		fmt.Printf("Failed to connect to postgres: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userUC := usecase.NewUserUseCase(postgresRepo.NewUserRepository(pool), postgresRepo.NewULIDGenerator())

	user, err := userUC.CreateUser(ctx, usecase.CreateUserInput{
		Email:    email,
		Name:     name,
		Password: password,
		Role:     domain.Role(role),
	})
	if err != nil {
		fmt.Printf("Failed to create user: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("User created")
	printJSON(user)
}

func listRoles() {
	for _, role := range domain.AllRoles() {
		fmt.Printf("%-12s %s\n", role, role.DisplayName())
	}
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("Failed to encode: %v\n", err)
		return
	}
	fmt.Println(string(data))
}
