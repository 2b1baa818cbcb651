package database

import (
	"context"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const Name = "melodia"

var Client *mongo.Client

// InitDB connects and pings before anything is served. Nothing renders
// until the first resolution completes, so a dead database fails startup
// instead of limping.
func InitDB() {
	mongoURI := os.Getenv("MONGODB_URL")
	if mongoURI == "" {
		log.Fatal("MONGODB_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	clientOptions := options.Client().
		ApplyURI(mongoURI).
		SetServerSelectionTimeout(30 * time.Second).
		SetConnectTimeout(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		log.Fatal("mongo connect failed", "err", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		log.Fatal("mongo ping failed", "err", err)
	}

	log.Info("mongo connected", "db", Name)
	Client = client
}

// Disconnect releases the client on shutdown.
func Disconnect(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		log.Warn("mongo disconnect", "err", err)
	}
}

// GetCollection returns a collection from the melodia database.
func GetCollection(collectionName string) *mongo.Collection {
	if Client == nil {
		log.Fatal("mongo client not initialized, call InitDB first")
	}
	return Client.Database(Name).Collection(collectionName)
}
