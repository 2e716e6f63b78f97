package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"engagesurvey/internal/config"
	"engagesurvey/internal/repository"
	"engagesurvey/internal/service"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// export writes every stored response as the dataset CSV
func main() {
	out := flag.String("o", "", "output file (default stdout)")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	responses, err := repository.NewResponseRepo(client.Database(cfg.MongoDatabase)).List(ctx)
	if err != nil {
		log.Fatalf("Failed to read responses: %v", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("Failed to create %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	if err := service.WriteDatasetCSV(w, responses); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}
	log.Printf("Exported %d responses", len(responses))
}
