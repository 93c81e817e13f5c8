/*
Copyright © 2025 paperdesk
*/
package cmd

import (
	"context"
	"log"

	"github.com/paperdesk/paperdesk-be/config"
	"github.com/paperdesk/paperdesk-be/database"
	"github.com/paperdesk/paperdesk-be/repository"
	"github.com/paperdesk/paperdesk-be/service"
	"github.com/spf13/cobra"
)

// reindexCmd rebuilds the search index from the papers stored in MongoDB.
var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the paper search index",
	Long: `Drops the Weaviate paper class and re-indexes every paper found in
MongoDB, extracting text from stored PDF files again.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		storage, err := service.NewDiskStorage(cfg.UploadDir, cfg.PublicBaseURL)
		if err != nil {
			log.Fatalf("Failed to init storage: %v", err)
		}

		mongoClient, err := database.NewMongoClient(context.Background(), cfg.MongoURI)
		if err != nil {
			log.Fatalf("Failed to connect to MongoDB: %v", err)
		}
		paperRepo := repository.NewPaperRepo(mongoClient.Database(cfg.MongoDatabase).Collection("papers"))

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		searchService := service.NewSearchService(weaviateDb, paperRepo, service.NewPDFService(0), storage)
		count, err := searchService.Reindex(context.Background())
		if err != nil {
			log.Fatalf("Reindex failed: %v", err)
		}
		log.Printf("Reindexed %d papers\n", count)
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
