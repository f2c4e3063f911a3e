package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/sahilchouksey/course-catalog/config"
	"github.com/sahilchouksey/course-catalog/database"
)

func main() {
	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.Fatalf("Failed to load environment variables: %v", err)
	}

	env, err := config.Get()
	if err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	// Open the store selected by DB_DRIVER
	store, err := database.Open(env)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Run seeds
	separator := strings.Repeat("=", 60)
	fmt.Println(separator)
	fmt.Println("Course Catalog - Database Seeding")
	fmt.Println(separator)
	fmt.Println()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := database.RunSeeds(ctx, store); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	stats, err := store.CatalogStats(ctx)
	if err != nil {
		log.Fatalf("Failed to read catalog stats: %v", err)
	}

	fmt.Println()
	fmt.Println(separator)
	fmt.Println("🎉 Seeding completed successfully!")
	fmt.Printf("%d courses in %d categories (%d featured)\n", stats.TotalCourses, stats.Categories, stats.FeaturedCourses)
	fmt.Println(separator)
}
