package handlers

import (
	"github.com/arju88nair/shelvedBackend/app/server/jwt"
	"github.com/arju88nair/shelvedBackend/app/server/ledger"
	"github.com/arju88nair/shelvedBackend/app/server/summarizer"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	l      *zap.Logger           // logging
	db     *gorm.DB              // document store
	rdb    *redis.Client         // cache
	jwt    *jwt.JWT              // token signing and parsing
	ledger *ledger.Ledger        // token lifecycle ledger
	sum    summarizer.Summarizer // article digestion
}

func NewApp(l *zap.Logger, db *gorm.DB, rdb *redis.Client, j *jwt.JWT, lg *ledger.Ledger, sum summarizer.Summarizer) *App {
	return &App{
		l:      l,
		db:     db,
		rdb:    rdb,
		jwt:    j,
		ledger: lg,
		sum:    sum,
	}
}
