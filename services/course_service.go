package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/sahilchouksey/course-catalog/database"
	"github.com/sahilchouksey/course-catalog/model"
	"github.com/sahilchouksey/course-catalog/utils/validation"
)

const (
	// TopFeaturedLimit caps the featured listing
	TopFeaturedLimit = 6
	// SearchPageSize is the slice size of title searches
	SearchPageSize = 10
	// MinSearchLength is the shortest accepted title search term
	MinSearchLength = 3
	// MaxSearchPage is the last page whose row offset fits in an int
	MaxSearchPage = math.MaxInt / SearchPageSize
)

// Client facing texts of the service errors
const (
	MsgNoCategoryResults = "No results for given category"
	MsgBlankCategory     = "Category must not be blank"
	MsgSearchTooShort    = "Search query too short"
	MsgInvalidPage       = "Page must be a non-negative integer"
)

var (
	ErrNoCategoryResults = errors.New("no results for given category")
	ErrBlankCategory     = errors.New("category must not be blank")
	ErrSearchTooShort    = errors.New("search query too short")
	ErrInvalidPage       = errors.New("page must be a non-negative integer")
)

var errorMessages = map[error]string{
	ErrNoCategoryResults: MsgNoCategoryResults,
	ErrBlankCategory:     MsgBlankCategory,
	ErrSearchTooShort:    MsgSearchTooShort,
	ErrInvalidPage:       MsgInvalidPage,
}

// ErrorMessage returns the response text for a service error, falling back
// to err.Error() for errors it does not know.
func ErrorMessage(err error) string {
	for sentinel, msg := range errorMessages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return err.Error()
}

// CourseService sits between the course handlers and the store. It owns
// input validation and the update/upsert decision.
type CourseService struct {
	store     database.CourseStore
	validator *validation.Validator
}

// NewCourseService creates a new course service
func NewCourseService(store database.CourseStore) *CourseService {
	return &CourseService{
		store:     store,
		validator: validation.NewValidator(),
	}
}

// GetCourse returns the course or database.ErrCourseNotFound
func (s *CourseService) GetCourse(ctx context.Context, id uint) (*model.Course, error) {
	return s.store.FindCourseByID(ctx, id)
}

// CoursesByCategory returns the courses of an exact category; an empty
// result is reported as ErrNoCategoryResults.
func (s *CourseService) CoursesByCategory(ctx context.Context, category string) ([]model.Course, error) {
	if strings.TrimSpace(category) == "" {
		return nil, ErrBlankCategory
	}

	courses, err := s.store.FindCoursesByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, ErrNoCategoryResults
	}
	return courses, nil
}

// TopFeatured returns at most TopFeaturedLimit featured courses
func (s *CourseService) TopFeatured(ctx context.Context) ([]model.Course, error) {
	return s.store.FindTopFeaturedCourses(ctx, TopFeaturedLimit)
}

// Categories returns the distinct categories in use
func (s *CourseService) Categories(ctx context.Context) ([]model.CategoryDTO, error) {
	return s.store.DistinctCategories(ctx)
}

// SearchByTitle returns one slice of courses whose title contains title
func (s *CourseService) SearchByTitle(ctx context.Context, title string, page int) (*model.CourseSlice, error) {
	if strings.TrimSpace(title) == "" || utf8.RuneCountInString(title) < MinSearchLength {
		return nil, ErrSearchTooShort
	}
	if page < 0 || page > MaxSearchPage {
		return nil, ErrInvalidPage
	}

	return s.store.SearchCoursesByTitle(ctx, title, page, SearchPageSize)
}

// InsertCourse validates and stores a new course. Any client supplied id or
// rating is discarded.
func (s *CourseService) InsertCourse(ctx context.Context, payload model.Course) (*model.Course, error) {
	course, err := s.prepare(payload)
	if err != nil {
		return nil, err
	}

	if err := s.store.SaveCourse(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// UpdateCourse applies payload to the course stored under id. If the course
// exists only title, subtitle, author, category and thumbUrl are copied onto
// it; price and isFeatured keep their stored values. If it does not exist
// the whole payload is stored under id.
//
// The existence check and the save are separate statements with no locking.
func (s *CourseService) UpdateCourse(ctx context.Context, id uint, payload model.Course) (*model.Course, error) {
	incoming, err := s.prepare(payload)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.FindCourseByID(ctx, id)
	switch {
	case err == nil:
		mergeCourseFields(existing, incoming)
		if err := s.store.SaveCourse(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil

	case errors.Is(err, database.ErrCourseNotFound):
		incoming.ID = id
		if err := s.store.SaveCourse(ctx, incoming); err != nil {
			return nil, err
		}
		return incoming, nil

	default:
		return nil, err
	}
}

// DeleteCourse removes the course or returns database.ErrCourseNotFound
func (s *CourseService) DeleteCourse(ctx context.Context, id uint) error {
	exists, err := s.store.ExistsCourseByID(ctx, id)
	if err != nil {
		return err
	}
	if !exists {
		return database.ErrCourseNotFound
	}

	return s.store.DeleteCourseByID(ctx, id)
}

// prepare sanitizes a write payload, resets server controlled fields and
// validates the result
func (s *CourseService) prepare(payload model.Course) (*model.Course, error) {
	course := &model.Course{
		Title:      validation.SanitizeString(payload.Title),
		Subtitle:   validation.SanitizeOptional(payload.Subtitle),
		Author:     validation.SanitizeString(payload.Author),
		Category:   validation.SanitizeString(payload.Category),
		ThumbURL:   validation.SanitizeString(payload.ThumbURL),
		Price:      payload.Price,
		IsFeatured: payload.IsFeatured,
	}

	if err := s.validator.ValidateStruct(course); err != nil {
		return nil, err
	}
	return course, nil
}

// mergeCourseFields copies the updatable fields of src onto dst. Rating is
// server controlled and is never taken from a request.
func mergeCourseFields(dst, src *model.Course) {
	dst.Title = src.Title
	dst.Subtitle = src.Subtitle
	dst.Author = src.Author
	dst.Category = src.Category
	dst.ThumbURL = src.ThumbURL
}
