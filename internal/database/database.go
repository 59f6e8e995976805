package database

import (
	"context"

	"github.com/IvanCastroRuizdevitech/demo-nequi-push/internal/config"
	"github.com/IvanCastroRuizdevitech/demo-nequi-push/pkg/mysql"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewConnection(cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	return mysql.NewConnection(context.Background(), cfg.Database, logger)
}
