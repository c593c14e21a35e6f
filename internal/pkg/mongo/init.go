package mongo

import (
	"SkillNest/internal/api/config"
	"SkillNest/internal/pkg/logger"
	"context"
	log "log/slog"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// InitMongo 建立连接并返回 Database 引用
func InitMongo(cfg config.MongoConfig) (*mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	slowQuery := time.Duration(cfg.SlowQueryMS) * time.Millisecond
	if slowQuery <= 0 {
		slowQuery = 200 * time.Millisecond
	}

	// 建立连接
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(cfg.URL).
		SetMonitor(logger.NewMongoMonitor(slowQuery)),
	)
	if err != nil {
		return nil, err
	}

	// 检查连通性
	if err = client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	db := client.Database(cfg.Database)

	log.Info("MongoDB initialized successfully", "db", cfg.Database)
	return db, nil
}
