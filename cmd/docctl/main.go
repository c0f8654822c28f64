package main

import (
	"fmt"
	"os"

	"docflow_backend/database"
	"docflow_backend/internal/app"
	"docflow_backend/internal/auth"
	"docflow_backend/internal/config"
	"docflow_backend/internal/logger"
	"docflow_backend/internal/workers"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "docctl",
		Short:         "Служебные команды docflow",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newMigrateCmd(),
		newBackupCmd(),
		newCreateAdminCmd(),
		newHashPasswordCmd(),
	)
	return root
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Создать или обновить таблицы",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := openDatabase()
			if err != nil {
				return err
			}
			if err := database.AutoMigrate(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrated %s database\n", cfg.Database.Driver)
			return nil
		},
	}
}

func newBackupCmd() *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Сделать резервную копию базы сейчас",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if dir != "" {
				cfg.Backup.Dir = dir
			}
			if err := logger.InitAudit(logger.AuditConfig{
				Dir:        cfg.Logs.Dir,
				MaxSizeMB:  cfg.Logs.MaxSizeMB,
				MaxBackups: cfg.Logs.MaxBackups,
			}); err != nil {
				return err
			}
			defer logger.CloseAudit()

			at, err := cfg.BackupTime()
			if err != nil {
				return err
			}
			worker := workers.NewBackupWorker(app.BackupConfig(cfg, at), app.NewMailer(cfg))
			path, err := worker.RunOnce(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "каталог для копии (по умолчанию backup.dir)")
	return cmd
}

func newCreateAdminCmd() *cobra.Command {
	var seed app.AdminSeed
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Создать администратора, если его еще нет",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := openDatabase()
			if err != nil {
				return err
			}
			created, err := app.SeedFirstAdmin(db, seed)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "admin %q created\n", seed.Username)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "admin %q already exists, nothing to do\n", seed.Username)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&seed.Username, "username", "u", "", "логин")
	cmd.Flags().StringVarP(&seed.Password, "password", "p", "", "пароль")
	cmd.Flags().StringVar(&seed.Name, "name", "Administrator", "имя")
	cmd.Flags().StringVar(&seed.Department, "department", "Администрация", "отдел (создается при необходимости)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password <password>",
		Short: "Вывести bcrypt-хеш пароля",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hash, err := auth.HashPassword(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.Server.Env)
	return cfg, nil
}

func openDatabase() (*config.Config, *gorm.DB, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	db, err := database.Open(database.Options{
		Driver: cfg.Database.Driver,
		DSN:    cfg.Database.DSN,
	})
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}
