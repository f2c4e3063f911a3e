package database

import (
	"context"
	"fmt"
	"log"

	"github.com/sahilchouksey/course-catalog/model"
)

// Seeder handles database seeding operations
type Seeder struct {
	store CourseStore
}

// NewSeeder creates a new seeder instance
func NewSeeder(store CourseStore) *Seeder {
	return &Seeder{store: store}
}

// RunSeeds seeds the catalog through the given store
func RunSeeds(ctx context.Context, store CourseStore) error {
	return NewSeeder(store).SeedAll(ctx)
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll(ctx context.Context) error {
	log.Println("🌱 Starting database seeding...")

	if err := s.SeedCourses(ctx); err != nil {
		return fmt.Errorf("failed to seed courses: %w", err)
	}

	log.Println("✅ Database seeding completed successfully!")
	return nil
}

// SeedCourses inserts the sample catalog when the courses table is empty
func (s *Seeder) SeedCourses(ctx context.Context) error {
	stats, err := s.store.CatalogStats(ctx)
	if err != nil {
		return err
	}

	if stats.TotalCourses > 0 {
		log.Println("⏭️  Courses already exist, skipping...")
		return nil
	}

	courses := SampleCourses()
	for i := range courses {
		if err := s.store.SaveCourse(ctx, &courses[i]); err != nil {
			return fmt.Errorf("course %q: %w", courses[i].Title, err)
		}
		log.Printf("  ✓ Created course: %s (%s)", courses[i].Title, courses[i].Category)
	}

	log.Printf("✅ Seeded %d courses", len(courses))
	return nil
}

// SampleCourses returns the catalog used for local development
func SampleCourses() []model.Course {
	subtitle := func(s string) *string { return &s }

	return []model.Course{
		{
			Title:      "Go Basics",
			Subtitle:   subtitle("Types, functions and packages"),
			Author:     "Rob Fields",
			Category:   "Programming",
			ThumbURL:   "https://img.example.com/courses/go-basics.png",
			Price:      9.99,
			IsFeatured: true,
		},
		{
			Title:      "Concurrency in Go",
			Subtitle:   subtitle("Goroutines, channels and the sync package"),
			Author:     "Rob Fields",
			Category:   "Programming",
			ThumbURL:   "https://img.example.com/courses/go-concurrency.png",
			Price:      19.99,
			IsFeatured: true,
		},
		{
			Title:    "PostgreSQL for Developers",
			Author:   "Maria Lopez",
			Category: "Databases",
			ThumbURL: "https://img.example.com/courses/postgres.png",
			Price:    14.50,
		},
		{
			Title:      "Redis in Practice",
			Subtitle:   subtitle("Caching, queues and rate limiting"),
			Author:     "Maria Lopez",
			Category:   "Databases",
			ThumbURL:   "https://img.example.com/courses/redis.png",
			Price:      12.00,
			IsFeatured: true,
		},
		{
			Title:    "Photography Fundamentals",
			Author:   "Ken Ito",
			Category: "Photography",
			ThumbURL: "https://img.example.com/courses/photo.png",
			Price:    24.99,
		},
		{
			Title:      "Watercolor Landscapes",
			Subtitle:   subtitle("From sketch to finished painting"),
			Author:     "Anna Berg",
			Category:   "Art",
			ThumbURL:   "https://img.example.com/courses/watercolor.png",
			Price:      17.25,
			IsFeatured: true,
		},
	}
}
