package database

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/sahilchouksey/course-catalog/model"
	queryHelper "github.com/sahilchouksey/course-catalog/utils/query"
)

// MemoryStore keeps courses in process memory. It backs DB_DRIVER=memory for
// running the API without PostgreSQL and is the store used by handler tests.
// Ordering and matching follow the SQL stores.
type MemoryStore struct {
	mu      sync.RWMutex
	courses map[uint]model.Course
	nextID  uint
}

var _ Storage = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		courses: make(map[uint]model.Course),
		nextID:  1,
	}
}

func (s *MemoryStore) Init() error        { return nil }
func (s *MemoryStore) Close() error       { return nil }
func (s *MemoryStore) HealthCheck() error { return nil }

func (s *MemoryStore) FindCourseByID(ctx context.Context, id uint) (*model.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	course, ok := s.courses[id]
	if !ok {
		return nil, ErrCourseNotFound
	}
	return &course, nil
}

func (s *MemoryStore) ExistsCourseByID(ctx context.Context, id uint) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.courses[id]
	return ok, nil
}

func (s *MemoryStore) FindCoursesByCategory(ctx context.Context, category string) ([]model.Course, error) {
	return s.filter(func(c model.Course) bool { return c.Category == category }), nil
}

func (s *MemoryStore) FindTopFeaturedCourses(ctx context.Context, limit int) ([]model.Course, error) {
	courses := s.filter(func(c model.Course) bool { return c.IsFeatured })
	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Rating > courses[j].Rating
	})
	if len(courses) > limit {
		courses = courses[:limit]
	}
	return courses, nil
}

func (s *MemoryStore) DistinctCategories(ctx context.Context) ([]model.CategoryDTO, error) {
	s.mu.RLock()
	seen := make(map[string]struct{})
	for _, c := range s.courses {
		seen[c.Category] = struct{}{}
	}
	s.mu.RUnlock()

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)

	categories := make([]model.CategoryDTO, 0, len(names))
	for _, name := range names {
		categories = append(categories, model.CategoryDTO{Category: name})
	}
	return categories, nil
}

func (s *MemoryStore) SearchCoursesByTitle(ctx context.Context, fragment string, page, size int) (*model.CourseSlice, error) {
	needle := strings.ToLower(fragment)
	courses := s.filter(func(c model.Course) bool {
		return strings.Contains(strings.ToLower(c.Title), needle)
	})

	offset := queryHelper.PageOffset(page, size)
	if offset > len(courses) {
		offset = len(courses)
	}
	end := len(courses)
	if size+1 < end-offset {
		end = offset + size + 1
	}
	return newCourseSlice(courses[offset:end], page, size), nil
}

func (s *MemoryStore) SaveCourse(ctx context.Context, course *model.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	course.RoundDecimals()
	if course.IsNew() {
		course.ID = s.nextID
	}
	if course.ID >= s.nextID && uint64(course.ID) < math.MaxInt64 {
		s.nextID = course.ID + 1
	}

	s.courses[course.ID] = *course
	return nil
}

func (s *MemoryStore) DeleteCourseByID(ctx context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.courses, id)
	return nil
}

func (s *MemoryStore) CatalogStats(ctx context.Context) (*model.CatalogStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.CatalogStats{TotalCourses: int64(len(s.courses))}
	categories := make(map[string]struct{})
	for _, c := range s.courses {
		if c.IsFeatured {
			stats.FeaturedCourses++
		}
		categories[c.Category] = struct{}{}
	}
	stats.Categories = int64(len(categories))
	return stats, nil
}

// filter returns matching courses ordered by id
func (s *MemoryStore) filter(match func(model.Course) bool) []model.Course {
	s.mu.RLock()
	defer s.mu.RUnlock()

	courses := make([]model.Course, 0)
	for _, c := range s.courses {
		if match(c) {
			courses = append(courses, c)
		}
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}
