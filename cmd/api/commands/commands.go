package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskhub/core/internal/adapters/repository"
	"github.com/taskhub/core/internal/domain/entities"
	"github.com/taskhub/core/internal/infrastructure/config"
	"github.com/taskhub/core/internal/infrastructure/database"
	"github.com/taskhub/core/internal/infrastructure/logger"
	"github.com/taskhub/core/internal/infrastructure/server"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the TaskHub API server",
		Long:  "Start the TaskHub API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Insert demo organizations, users and tasks",
		Long:  "Create a parent and child organization with one user per role and a few sample tasks. Intended for local development.",
		Run: func(cmd *cobra.Command, args []string) {
			runSeed()
		},
	}
}

// NewUserCommand creates the user management command
func NewUserCommand() *cobra.Command {
	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User management commands",
		Long:  "Create and manage users in the system",
	}

	createUserCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new user",
		Run: func(cmd *cobra.Command, args []string) {
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")
			orgID, _ := cmd.Flags().GetInt64("organization")

			if email == "" || password == "" {
				log.Fatal("Email and password are required")
			}

			createUser(email, password, role, orgID)
		},
	}

	createUserCmd.Flags().String("email", "", "User email (required)")
	createUserCmd.Flags().String("password", "", "User password (required)")
	createUserCmd.Flags().String("role", "viewer", "User role (owner, admin, viewer)")
	createUserCmd.Flags().Int64("organization", 0, "Organization id (a new organization is created when omitted)")

	userCmd.AddCommand(createUserCmd)
	return userCmd
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Fatalw("Failed to connect to database", "error", err)
	}
	defer db.Close()

	srv, err := server.New(cfg, db, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting TaskHub API server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatalw("Server failed to start", "error", err)
	}
}

func runMigration(direction string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	m, err := newMigrator(db)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	m, err := newMigrator(db)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func newMigrator(db *database.DB) (*migrate.Migrate, error) {
	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		return nil, fmt.Errorf("create migration driver: %w", err)
	}

	return migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
}

func runSeed() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	orgRepo := repository.NewOrganizationRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)
	taskRepo := repository.NewTaskRepository(db.DB)

	parent := &entities.Organization{Name: "TaskHub HQ"}
	if err := orgRepo.Create(ctx, parent); err != nil {
		log.Fatalf("Failed to create parent organization: %v", err)
	}
	fmt.Printf("Created organization %q (id %d)\n", parent.Name, parent.ID)

	child := &entities.Organization{Name: "TaskHub North Branch", ParentID: &parent.ID}
	if err := orgRepo.Create(ctx, child); err != nil {
		log.Fatalf("Failed to create child organization: %v", err)
	}
	fmt.Printf("Created organization %q (id %d)\n", child.Name, child.ID)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	seedUsers := []struct {
		email string
		role  entities.Role
		orgID int64
	}{
		{"owner@taskhub.dev", entities.RoleOwner, parent.ID},
		{"admin@taskhub.dev", entities.RoleAdmin, parent.ID},
		{"viewer@taskhub.dev", entities.RoleViewer, parent.ID},
		{"viewer-north@taskhub.dev", entities.RoleViewer, child.ID},
	}

	var creator uuid.UUID
	for _, su := range seedUsers {
		user := &entities.User{
			ID:             uuid.New(),
			Email:          su.email,
			PasswordHash:   string(hashed),
			Role:           su.role,
			OrganizationID: su.orgID,
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create user %s: %v", su.email, err)
		}
		if su.role == entities.RoleOwner {
			creator = user.ID
		}
		fmt.Printf("Created %s user %s\n", su.role, su.email)
	}

	category := "Operations"
	seedTasks := []entities.Task{
		{Title: "Review quarterly report", Status: entities.TaskStatusTodo, Category: &category, CreatorID: creator, OrganizationID: parent.ID},
		{Title: "Prepare onboarding checklist", Status: entities.TaskStatusInProgress, CreatorID: creator, OrganizationID: parent.ID},
	}

	for i := range seedTasks {
		if err := taskRepo.Create(ctx, &seedTasks[i]); err != nil {
			log.Fatalf("Failed to create task %q: %v", seedTasks[i].Title, err)
		}
		fmt.Printf("Created task %q (id %d)\n", seedTasks[i].Title, seedTasks[i].ID)
	}

	fmt.Println("Seed completed; all users share the password \"password123\"")
}

func createUser(email, password, role string, orgID int64) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	orgRepo := repository.NewOrganizationRepository(db.DB)
	userRepo := repository.NewUserRepository(db.DB)

	if orgID == 0 {
		org := &entities.Organization{Name: fmt.Sprintf("%s's Organization", email)}
		if err := orgRepo.Create(ctx, org); err != nil {
			log.Fatalf("Failed to create organization: %v", err)
		}
		orgID = org.ID
	} else {
		if _, err := orgRepo.GetByID(ctx, orgID); err != nil {
			log.Fatalf("Organization %d not found: %v", orgID, err)
		}
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &entities.User{
		ID:             uuid.New(),
		Email:          email,
		PasswordHash:   string(hashed),
		Role:           entities.ParseRole(role),
		OrganizationID: orgID,
	}

	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("User created successfully:\n")
	fmt.Printf("  ID: %s\n", user.ID)
	fmt.Printf("  Email: %s\n", user.Email)
	fmt.Printf("  Role: %s\n", user.Role)
	fmt.Printf("  Organization: %d\n", user.OrganizationID)
}
