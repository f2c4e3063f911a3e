package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/sahilchouksey/course-catalog/model"
	queryHelper "github.com/sahilchouksey/course-catalog/utils/query"
)

const courseColumns = `id, title, subtitle, author, category, rating, thumb_url, price, is_featured`

const (
	selectCourseByIDQuery    = `SELECT ` + courseColumns + ` FROM courses WHERE id = $1;`
	existsCourseQuery        = `SELECT EXISTS(SELECT 1 FROM courses WHERE id = $1);`
	selectByCategoryQuery    = `SELECT ` + courseColumns + ` FROM courses WHERE category = $1 ORDER BY id;`
	selectTopFeaturedQuery   = `SELECT ` + courseColumns + ` FROM courses WHERE is_featured = TRUE ORDER BY rating DESC, id ASC LIMIT $1;`
	selectDistinctCategories = `SELECT DISTINCT category FROM courses ORDER BY category;`
	searchByTitleQuery       = `SELECT ` + courseColumns + ` FROM courses WHERE title ILIKE $1 ORDER BY id LIMIT $2 OFFSET $3;`
	insertCourseQuery        = `INSERT INTO courses (title, subtitle, author, category, rating, thumb_url, price, is_featured) VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id;`
	insertCourseWithIDQuery  = `INSERT INTO courses (id, title, subtitle, author, category, rating, thumb_url, price, is_featured) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
	updateCourseQuery        = `UPDATE courses SET title = $1, subtitle = $2, author = $3, category = $4, rating = $5, thumb_url = $6, price = $7, is_featured = $8, updated_at = NOW() WHERE id = $9;`
	deleteCourseQuery        = `DELETE FROM courses WHERE id = $1;`
	syncCourseSequenceQuery  = `SELECT setval(pg_get_serial_sequence('courses', 'id'), (SELECT COALESCE(MAX(id), 1) FROM courses));`
	catalogStatsQuery        = `SELECT COUNT(*), COUNT(*) FILTER (WHERE is_featured), COUNT(DISTINCT category) FROM courses;`
)

func (s *PostgreSQLStore) FindCourseByID(ctx context.Context, id uint) (*model.Course, error) {
	row := s.db.QueryRowContext(ctx, selectCourseByIDQuery, id)

	course, err := scanIntoCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find course %d: %w", id, err)
	}
	return course, nil
}

func (s *PostgreSQLStore) ExistsCourseByID(ctx context.Context, id uint) (bool, error) {
	var exists bool
	if err := s.db.QueryRowContext(ctx, existsCourseQuery, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check course %d: %w", id, err)
	}
	return exists, nil
}

func (s *PostgreSQLStore) FindCoursesByCategory(ctx context.Context, category string) ([]model.Course, error) {
	courses, err := s.queryCourses(ctx, selectByCategoryQuery, category)
	if err != nil {
		return nil, fmt.Errorf("find courses by category: %w", err)
	}
	return courses, nil
}

func (s *PostgreSQLStore) FindTopFeaturedCourses(ctx context.Context, limit int) ([]model.Course, error) {
	courses, err := s.queryCourses(ctx, selectTopFeaturedQuery, limit)
	if err != nil {
		return nil, fmt.Errorf("find featured courses: %w", err)
	}
	return courses, nil
}

func (s *PostgreSQLStore) DistinctCategories(ctx context.Context) ([]model.CategoryDTO, error) {
	rows, err := s.db.QueryContext(ctx, selectDistinctCategories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []model.CategoryDTO{}
	for rows.Next() {
		var dto model.CategoryDTO
		if err := rows.Scan(&dto.Category); err != nil {
			return nil, err
		}
		categories = append(categories, dto)
	}

	return categories, rows.Err()
}

func (s *PostgreSQLStore) SearchCoursesByTitle(ctx context.Context, fragment string, page, size int) (*model.CourseSlice, error) {
	// One extra row tells whether a next slice exists.
	courses, err := s.queryCourses(ctx, searchByTitleQuery,
		queryHelper.ContainsPattern(fragment), size+1, queryHelper.PageOffset(page, size))
	if err != nil {
		return nil, fmt.Errorf("search courses: %w", err)
	}

	return newCourseSlice(courses, page, size), nil
}

func (s *PostgreSQLStore) SaveCourse(ctx context.Context, course *model.Course) error {
	course.RoundDecimals()

	if course.IsNew() {
		err := s.db.QueryRowContext(ctx, insertCourseQuery,
			course.Title, course.Subtitle, course.Author, course.Category,
			course.Rating, course.ThumbURL, course.Price, course.IsFeatured,
		).Scan(&course.ID)
		if err != nil {
			return fmt.Errorf("insert course: %w", err)
		}
		return nil
	}

	result, err := s.db.ExecContext(ctx, updateCourseQuery,
		course.Title, course.Subtitle, course.Author, course.Category,
		course.Rating, course.ThumbURL, course.Price, course.IsFeatured, course.ID,
	)
	if err != nil {
		return fmt.Errorf("update course %d: %w", course.ID, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update course %d: %w", course.ID, err)
	}
	if affected > 0 {
		return nil
	}

	// No row under this id yet: insert it with the caller's id.
	_, err = s.db.ExecContext(ctx, insertCourseWithIDQuery,
		course.ID, course.Title, course.Subtitle, course.Author, course.Category,
		course.Rating, course.ThumbURL, course.Price, course.IsFeatured,
	)
	if err != nil {
		return fmt.Errorf("insert course %d: %w", course.ID, err)
	}

	if _, err := s.db.ExecContext(ctx, syncCourseSequenceQuery); err != nil {
		return fmt.Errorf("sync course id sequence: %w", err)
	}
	return nil
}

func (s *PostgreSQLStore) DeleteCourseByID(ctx context.Context, id uint) error {
	if _, err := s.db.ExecContext(ctx, deleteCourseQuery, id); err != nil {
		return fmt.Errorf("delete course %d: %w", id, err)
	}
	return nil
}

func (s *PostgreSQLStore) CatalogStats(ctx context.Context) (*model.CatalogStats, error) {
	stats := new(model.CatalogStats)
	err := s.db.QueryRowContext(ctx, catalogStatsQuery).Scan(
		&stats.TotalCourses,
		&stats.FeaturedCourses,
		&stats.Categories,
	)
	if err != nil {
		return nil, fmt.Errorf("catalog stats: %w", err)
	}
	return stats, nil
}

func (s *PostgreSQLStore) queryCourses(ctx context.Context, query string, args ...interface{}) ([]model.Course, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	courses := []model.Course{}
	for rows.Next() {
		course, err := scanIntoCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *course)
	}

	return courses, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanIntoCourse(row rowScanner) (*model.Course, error) {
	course := new(model.Course)
	var subtitle sql.NullString

	err := row.Scan(
		&course.ID,
		&course.Title,
		&subtitle,
		&course.Author,
		&course.Category,
		&course.Rating,
		&course.ThumbURL,
		&course.Price,
		&course.IsFeatured,
	)
	if err != nil {
		return nil, err
	}

	if subtitle.Valid {
		course.Subtitle = &subtitle.String
	}
	return course, nil
}

// newCourseSlice trims a size+1 result window down to size and derives hasNext
func newCourseSlice(courses []model.Course, page, size int) *model.CourseSlice {
	hasNext := len(courses) > size
	if hasNext {
		courses = courses[:size]
	}

	return &model.CourseSlice{
		Content: courses,
		Page:    page,
		Size:    size,
		HasNext: hasNext,
	}
}
