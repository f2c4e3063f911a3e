package database

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/sahilchouksey/course-catalog/config"
	"github.com/sahilchouksey/course-catalog/model"
	queryHelper "github.com/sahilchouksey/course-catalog/utils/query"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Columns written when an existing course row is saved
var courseUpdateColumns = []string{
	"title", "subtitle", "author", "category", "rating",
	"thumb_url", "price", "is_featured", "updated_at",
}

type GORMStore struct {
	db *gorm.DB
}

// StartGORM initializes a GORM connection to PostgreSQL
func StartGORM(env *config.EnvironmentVariable) (*GORMStore, error) {
	// Build DSN (Data Source Name)
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		env.DB_HOST,
		env.DB_USER_NAME,
		env.DB_PASSWORD,
		env.DB_NAME,
		env.DB_PORT,
		env.DB_SSL_MODE,
	)

	// Configure GORM logger
	gormLogger := logger.Default.LogMode(logger.Info)
	if env.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}

	// Open GORM connection
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: false,
		PrepareStmt:            true, // Prepare statements for better performance
	})
	if err != nil {
		log.Println("Unable to connect to PostgreSQL with GORM:", err)
		return nil, err
	}

	// Get underlying *sql.DB to configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	log.Println("Successfully connected to PostgreSQL Database with GORM.")

	return NewGORMStore(db), nil
}

// NewGORMStore wraps an already opened GORM connection
func NewGORMStore(db *gorm.DB) *GORMStore {
	return &GORMStore{db: db}
}

// Init runs the AutoMigrate to create/update tables
func (s *GORMStore) Init() error {
	log.Println("Running GORM AutoMigrate for all models...")

	if err := s.db.AutoMigrate(&model.Course{}); err != nil {
		log.Println("Error running AutoMigrate:", err)
		return err
	}

	log.Println("GORM AutoMigrate completed successfully!")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	log.Println("Closing GORM PostgreSQL connection...")
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// FindCourseByID retrieves a single course
func (s *GORMStore) FindCourseByID(ctx context.Context, id uint) (*model.Course, error) {
	var course model.Course
	if err := s.db.WithContext(ctx).First(&course, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course %d: %w", id, err)
	}
	return &course, nil
}

// ExistsCourseByID reports whether a course row exists
func (s *GORMStore) ExistsCourseByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.Course{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check course %d: %w", id, err)
	}
	return count > 0, nil
}

// FindCoursesByCategory returns every course in the exact category
func (s *GORMStore) FindCoursesByCategory(ctx context.Context, category string) ([]model.Course, error) {
	courses := []model.Course{}
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("id").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("find courses by category: %w", err)
	}
	return courses, nil
}

// FindTopFeaturedCourses returns up to limit featured courses, best rated first
func (s *GORMStore) FindTopFeaturedCourses(ctx context.Context, limit int) ([]model.Course, error) {
	courses := []model.Course{}
	err := s.db.WithContext(ctx).
		Where("is_featured = ?", true).
		Order("rating DESC").
		Order("id ASC").
		Limit(limit).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("find featured courses: %w", err)
	}
	return courses, nil
}

// DistinctCategories lists every category currently in use
func (s *GORMStore) DistinctCategories(ctx context.Context) ([]model.CategoryDTO, error) {
	categories := []model.CategoryDTO{}
	err := s.db.WithContext(ctx).
		Model(&model.Course{}).
		Distinct("category").
		Order("category").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// SearchCoursesByTitle returns one slice of courses whose title contains fragment
func (s *GORMStore) SearchCoursesByTitle(ctx context.Context, fragment string, page, size int) (*model.CourseSlice, error) {
	courses := []model.Course{}
	err := s.db.WithContext(ctx).
		Where("title ILIKE ?", queryHelper.ContainsPattern(fragment)).
		Order("id").
		Limit(size + 1).
		Offset(queryHelper.PageOffset(page, size)).
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}

	return newCourseSlice(courses, page, size), nil
}

// SaveCourse inserts new courses and updates existing ones. A course carrying
// an ID that has no row yet is inserted under that ID.
func (s *GORMStore) SaveCourse(ctx context.Context, course *model.Course) error {
	course.RoundDecimals()
	db := s.db.WithContext(ctx)

	if course.IsNew() {
		if err := db.Create(course).Error; err != nil {
			return fmt.Errorf("insert course: %w", err)
		}
		return nil
	}

	result := db.Model(course).Select(courseUpdateColumns).Updates(course)
	if result.Error != nil {
		return fmt.Errorf("update course %d: %w", course.ID, result.Error)
	}
	if result.RowsAffected > 0 {
		return nil
	}

	if err := db.Create(course).Error; err != nil {
		return fmt.Errorf("insert course %d: %w", course.ID, err)
	}
	if err := db.Exec(syncCourseSequenceQuery).Error; err != nil {
		return fmt.Errorf("sync course id sequence: %w", err)
	}
	return nil
}

// DeleteCourseByID removes the course row
func (s *GORMStore) DeleteCourseByID(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&model.Course{}, id).Error; err != nil {
		return fmt.Errorf("delete course %d: %w", id, err)
	}
	return nil
}

// CatalogStats counts courses, featured courses and categories
func (s *GORMStore) CatalogStats(ctx context.Context) (*model.CatalogStats, error) {
	stats := new(model.CatalogStats)
	courses := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&model.Course{})
	}

	if err := courses().Count(&stats.TotalCourses).Error; err != nil {
		return nil, fmt.Errorf("count courses: %w", err)
	}
	if err := courses().Where("is_featured = ?", true).Count(&stats.FeaturedCourses).Error; err != nil {
		return nil, fmt.Errorf("count featured courses: %w", err)
	}
	if err := courses().Distinct("category").Count(&stats.Categories).Error; err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return stats, nil
}
