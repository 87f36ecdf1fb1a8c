// Command seedadmin creates the first administrator from ADMIN_EMAIL,
// ADMIN_PASSWORD and ADMIN_PHONE. Running it again is a no-op.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"transportconnect/cmd"
	"transportconnect/internal/adapters/out/postgres"
	"transportconnect/internal/core/application/usecases/commands"
	"transportconnect/internal/pkg/errs"
	"transportconnect/internal/pkg/logging"

	"go.uber.org/zap"
)

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configs, err := cmd.LoadConfig()
	if err != nil {
		return err
	}
	logger, err := logging.New(configs.LogLevel, configs.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	db, err := postgres.Open(configs.Database(), postgres.NewZapLogger(logger))
	if err != nil {
		return err
	}
	if err := postgres.Migrate(db); err != nil {
		return err
	}

	app, err := cmd.NewCompositionRoot(configs, db, logger)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()

	command, err := commands.NewRegisterAdminCommand("Platform", "Admin", configs.AdminEmail, configs.AdminPassword, configs.AdminPhone)
	if err != nil {
		return err
	}

	result, err := app.CreateRegisterCommandHandler().Handle(ctx, command)
	if errors.Is(err, errs.ErrDuplicateIdentity) {
		logger.Info("admin already exists", zap.String("email", configs.AdminEmail))
		return nil
	}
	if err != nil {
		return err
	}
	logger.Info("admin created", zap.String("id", result.Identity.ID.String()), zap.String("email", result.Identity.Email))
	return nil
}
