package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Stuart1162/fizzyjuice/internal/config"
	mongodoc "github.com/Stuart1162/fizzyjuice/internal/infrastructure/mongo"
	"github.com/Stuart1162/fizzyjuice/internal/server"
)

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		cfg.ServerLog.Fatalf("MongoDB 接続に失敗しました: %v", err)
	}

	c := cfg.Collections
	if err := mongodoc.EnsureIndexes(ctx, client.Database(cfg.MongoDatabase), mongodoc.Collections{
		Jobs:                c.Jobs,
		Prefs:               c.Prefs,
		SavedJobs:           c.SavedJobs,
		JobMetrics:          c.JobMetrics,
		PendingPosts:        c.PendingPosts,
		FailedNotifications: c.FailedNotifications,
	}); err != nil {
		cfg.ServerLog.Printf("インデックス作成に失敗しました: %v", err)
	}

	app := server.New(cfg, client)
	if err := app.Run(); err != nil {
		log.Fatalf("サーバー起動に失敗: %v", err)
	}
}
