package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/brightpath-care/shiftmatch/internal/config"
	"github.com/brightpath-care/shiftmatch/pkg/postgres"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg      *config.Config
	Database *postgres.DB
	Logger   *zap.Logger
	Ctx      context.Context
}
