package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	_ "github.com/lib/pq"
	"github.com/sahilchouksey/course-catalog/config"
	"github.com/sahilchouksey/course-catalog/model"
)

var (
	// ErrCourseNotFound is returned when no course exists for the requested ID
	ErrCourseNotFound = errors.New("course not found")
)

// CourseStore is the persistence contract the course endpoints depend on
type CourseStore interface {
	FindCourseByID(ctx context.Context, id uint) (*model.Course, error)
	ExistsCourseByID(ctx context.Context, id uint) (bool, error)
	FindCoursesByCategory(ctx context.Context, category string) ([]model.Course, error)
	FindTopFeaturedCourses(ctx context.Context, limit int) ([]model.Course, error)
	DistinctCategories(ctx context.Context) ([]model.CategoryDTO, error)
	SearchCoursesByTitle(ctx context.Context, fragment string, page, size int) (*model.CourseSlice, error)
	SaveCourse(ctx context.Context, course *model.Course) error
	DeleteCourseByID(ctx context.Context, id uint) error
	CatalogStats(ctx context.Context) (*model.CatalogStats, error)
}

// Storage defines the interface that all database implementations must satisfy
type Storage interface {
	// Lifecycle methods
	Init() error
	Close() error
	HealthCheck() error

	CourseStore
}

// Open starts the store selected by DB_DRIVER ("gorm", "pq" or "memory")
func Open(env *config.EnvironmentVariable) (Storage, error) {
	switch env.DB_DRIVER {
	case "", "gorm":
		return StartGORM(env)
	case "pq":
		return Start(env)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DB_DRIVER)
	}
}

type PostgreSQLStore struct {
	db *sql.DB
}

func Start(env *config.EnvironmentVariable) (*PostgreSQLStore, error) {
	connectStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		env.DB_HOST,
		env.DB_PORT,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_SSL_MODE,
	)

	db, err := sql.Open("postgres", connectStr)
	if err != nil {
		log.Println("Unable to Start PostgreSQL Database.")
		return nil, err
	}

	if err := db.Ping(); err != nil {
		log.Println("Unable to reach PostgreSQL Database:", err)
		db.Close()
		return nil, err
	}

	log.Println("Successfully connected to PostgreSQL Database.")
	return NewPostgreSQLStore(db), nil
}

// NewPostgreSQLStore wraps an already opened *sql.DB
func NewPostgreSQLStore(db *sql.DB) *PostgreSQLStore {
	return &PostgreSQLStore{
		db: db,
	}
}

func (s *PostgreSQLStore) Init() error {
	log.Println("Initializing PostgreSQL Database.")
	return s.Initialize()
}

func (s *PostgreSQLStore) Close() error {
	log.Println("Closing PostgreSQL Database.")
	return s.db.Close()
}

// HealthCheck verifies the database connection is alive
func (s *PostgreSQLStore) HealthCheck() error {
	return s.db.Ping()
}
