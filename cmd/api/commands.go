package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Windi-Fikriyansyah/evergreen_web/internal/config"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/db"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/logging"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/models"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/realtime"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/render"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/routes"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/services/cdn"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/services/upload"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/store"
	"github.com/Windi-Fikriyansyah/evergreen_web/internal/utils"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "evergreen",
		Short:         "Marketing site and CMS admin",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Init(os.Getenv("APP_ENV"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())
	cmd.AddCommand(newCreateAdminCmd())
	return cmd
}

func connect(cfg config.Config) (*gorm.DB, error) {
	gdb, err := db.Connect(cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return gdb, nil
}

func newServeCmd() *cobra.Command {
	var migrate bool
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			gdb, err := connect(cfg)
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			if migrate {
				if err := db.Migrate(gdb); err != nil {
					return err
				}
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			hub := realtime.NewHub()
			go hub.Run(ctx)

			deps := routes.Deps{
				Config: cfg,
				Store:  store.New(gdb),
				Views:  render.NewEngine(cfg.AppEnv == "development"),
				Hub:    hub,
				Live:   realtime.LocalPublisher{Hub: hub},
			}

			if cfg.RedisAddr != "" {
				rdb := realtime.NewRedis(cfg.RedisAddr, cfg.RedisPassword)
				defer rdb.Close()
				if err := rdb.Ping(ctx).Err(); err != nil {
					logging.Log.Warn("redis unreachable, live feed stays local", zap.Error(err))
				} else {
					deps.Live = realtime.RedisPublisher{RDB: rdb}
					go realtime.Forward(ctx, rdb, hub)
				}
			}

			if cfg.CDNEnabled() {
				bunny := cdn.NewBunnyClient(cfg)
				deps.Relay = upload.NewRelay(bunny, cfg.UploadMaxBytes)
				deps.Files = bunny
			} else {
				logging.Log.Warn("bunny storage is not configured, uploads are disabled")
			}

			app := routes.NewApp(deps)

			go func() {
				<-ctx.Done()
				logging.Log.Info("shutting down")
				_ = app.ShutdownWithTimeout(10 * time.Second)
			}()

			logging.Log.Info("listening", zap.String("port", cfg.AppPort), zap.String("env", cfg.AppEnv))
			return app.Listen(":" + cfg.AppPort)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply migrations before serving")
	return cmd
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			gdb, err := connect(config.Load())
			if err != nil {
				return err
			}
			defer db.Close(gdb)
			return db.Migrate(gdb)
		},
	}
}

func newSeedCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert pages, sections and their content from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := db.LoadSeedFile(file)
			if err != nil {
				return err
			}
			gdb, err := connect(config.Load())
			if err != nil {
				return err
			}
			defer db.Close(gdb)
			return db.Seed(gdb, f)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "seed YAML file (defaults to the built-in landing page)")
	return cmd
}

func newCreateAdminCmd() *cobra.Command {
	var name, email, password, role string
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a CMS user",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := newUser(name, email, password, role)
			if err != nil {
				return err
			}
			gdb, err := connect(config.Load())
			if err != nil {
				return err
			}
			defer db.Close(gdb)

			s := store.New(gdb)
			ctx := cmd.Context()
			if _, err := s.GetUserByEmail(ctx, u.Email); err == nil {
				return fmt.Errorf("user %s already exists", u.Email)
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if err := s.CreateUser(ctx, u); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s)\n", u.Email, u.Role)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "Admin", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "login password, at least 8 characters")
	cmd.Flags().StringVar(&role, "role", string(models.RoleAdmin), "admin or editor")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

// newUser validates create-admin input and hashes the password.
func newUser(name, email, password, role string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email %q", email)
	}
	if len(password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}
	r := models.Role(strings.ToLower(strings.TrimSpace(role)))
	if r != models.RoleAdmin && r != models.RoleEditor {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hash,
		Role:     r,
		IsActive: true,
	}, nil
}
