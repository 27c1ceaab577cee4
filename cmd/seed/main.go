package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guestcal/pkg/model"
)

// The guesthouse's fixed room set. Seeding is idempotent: rooms that
// already exist by name are left untouched.
var roomNames = []string{
	"1eKamer",
	"2eKamer",
	"3eKamer",
	"4eKamer",
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DATABASE")
	if dbName == "" {
		dbName = "guestcal"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	coll := client.Database(dbName).Collection("Rooms")

	created := 0
	for _, name := range roomNames {
		count, err := coll.CountDocuments(ctx, bson.M{"name": name})
		if err != nil {
			log.Fatalf("Failed to check room %s: %v", name, err)
		}
		if count > 0 {
			fmt.Printf("Room %s already exists, skipping\n", name)
			continue
		}

		room := model.Room{
			ID:   uuid.New().String(),
			Name: name,
		}
		if _, err := coll.InsertOne(ctx, room); err != nil {
			log.Fatalf("Failed to seed room %s: %v", name, err)
		}
		fmt.Printf("Seeded room %s (%s)\n", name, room.ID)
		created++
	}

	fmt.Printf("Seeding completed: %d room(s) created.\n", created)
}
