package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/sahilchouksey/course-catalog/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var courseRowColumns = []string{"id", "title", "subtitle", "author", "category", "rating", "thumb_url", "price", "is_featured"}

func newMockPostgreSQLStore(t *testing.T) (*PostgreSQLStore, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewPostgreSQLStore(db), mock
}

func TestPostgreSQLStore_FindCourseByID(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCourseByIDQuery)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(courseRowColumns).
			AddRow(1, "Go Basics", "Intro", "A", "Programming", 4.5, "http://x.com/a.png", 9.99, true))

	course, err := store.FindCourseByID(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), course.ID)
	assert.Equal(t, "Go Basics", course.Title)
	require.NotNil(t, course.Subtitle)
	assert.Equal(t, "Intro", *course.Subtitle)
	assert.Equal(t, 4.5, course.Rating)
	assert.Equal(t, 9.99, course.Price)
	assert.True(t, course.IsFeatured)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_FindCourseByIDNotFound(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCourseByIDQuery)).
		WithArgs(404).
		WillReturnRows(sqlmock.NewRows(courseRowColumns))

	_, err := store.FindCourseByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrCourseNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_FindCourseByIDNullSubtitle(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectCourseByIDQuery)).
		WithArgs(2).
		WillReturnRows(sqlmock.NewRows(courseRowColumns).
			AddRow(2, "Go Basics", nil, "A", "Programming", 0.0, "http://x.com/a.png", 9.99, false))

	course, err := store.FindCourseByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, course.Subtitle)
}

func TestPostgreSQLStore_ExistsCourseByID(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsCourseQuery)).
		WithArgs(3).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := store.ExistsCourseByID(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_FindCoursesByCategory(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectByCategoryQuery)).
		WithArgs("Programming").
		WillReturnRows(sqlmock.NewRows(courseRowColumns).
			AddRow(1, "Go Basics", nil, "A", "Programming", 0.0, "http://x.com/a.png", 9.99, false).
			AddRow(2, "Rust Basics", nil, "B", "Programming", 0.0, "http://x.com/b.png", 19.99, false))

	courses, err := store.FindCoursesByCategory(context.Background(), "Programming")
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Rust Basics", courses[1].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_FindCoursesByCategoryEmpty(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectByCategoryQuery)).
		WithArgs("Cooking").
		WillReturnRows(sqlmock.NewRows(courseRowColumns))

	courses, err := store.FindCoursesByCategory(context.Background(), "Cooking")
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestPostgreSQLStore_FindTopFeaturedCourses(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectTopFeaturedQuery)).
		WithArgs(6).
		WillReturnRows(sqlmock.NewRows(courseRowColumns).
			AddRow(4, "Top", nil, "A", "Programming", 4.9, "http://x.com/a.png", 9.99, true))

	courses, err := store.FindTopFeaturedCourses(context.Background(), 6)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.True(t, courses[0].IsFeatured)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_DistinctCategories(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectDistinctCategories)).
		WillReturnRows(sqlmock.NewRows([]string{"category"}).AddRow("Art").AddRow("Programming"))

	categories, err := store.DistinctCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.CategoryDTO{{Category: "Art"}, {Category: "Programming"}}, categories)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_SearchCoursesByTitle(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	// size 2 fetches 3 rows; the third only signals a next slice
	mock.ExpectQuery(regexp.QuoteMeta(searchByTitleQuery)).
		WithArgs("%Go%", 3, 2).
		WillReturnRows(sqlmock.NewRows(courseRowColumns).
			AddRow(3, "Go A", nil, "A", "Programming", 0.0, "http://x.com/a.png", 9.99, false).
			AddRow(4, "Go B", nil, "A", "Programming", 0.0, "http://x.com/a.png", 9.99, false).
			AddRow(5, "Go C", nil, "A", "Programming", 0.0, "http://x.com/a.png", 9.99, false))

	slice, err := store.SearchCoursesByTitle(context.Background(), "Go", 1, 2)
	require.NoError(t, err)

	assert.Len(t, slice.Content, 2)
	assert.True(t, slice.HasNext)
	assert.Equal(t, 1, slice.Page)
	assert.Equal(t, 2, slice.Size)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_SearchCoursesByTitleLastSlice(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(searchByTitleQuery)).
		WithArgs("%Go%", 11, 0).
		WillReturnRows(sqlmock.NewRows(courseRowColumns).
			AddRow(3, "Go A", nil, "A", "Programming", 0.0, "http://x.com/a.png", 9.99, false))

	slice, err := store.SearchCoursesByTitle(context.Background(), "Go", 0, 10)
	require.NoError(t, err)
	assert.Len(t, slice.Content, 1)
	assert.False(t, slice.HasNext)
}

func TestPostgreSQLStore_SaveCourseInsert(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	course := &model.Course{
		Title:    "Go Basics",
		Author:   "A",
		Category: "Programming",
		ThumbURL: "http://x.com/a.png",
		Price:    9.99,
	}

	mock.ExpectQuery(regexp.QuoteMeta(insertCourseQuery)).
		WithArgs("Go Basics", sqlmock.AnyArg(), "A", "Programming", 0.0, "http://x.com/a.png", 9.99, false).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	require.NoError(t, store.SaveCourse(context.Background(), course))
	assert.Equal(t, uint(42), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_SaveCourseUpdate(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	course := &model.Course{ID: 5, Title: "Go Basics", Author: "A", Category: "Programming", ThumbURL: "http://x.com/a.png", Price: 9.99}

	mock.ExpectExec(regexp.QuoteMeta(updateCourseQuery)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SaveCourse(context.Background(), course))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_SaveCourseInsertsUnderCallerID(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	course := &model.Course{ID: 999, Title: "Go Basics", Author: "A", Category: "Programming", ThumbURL: "http://x.com/a.png", Price: 9.99, IsFeatured: true}

	mock.ExpectExec(regexp.QuoteMeta(updateCourseQuery)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(insertCourseWithIDQuery)).
		WithArgs(999, "Go Basics", sqlmock.AnyArg(), "A", "Programming", 0.0, "http://x.com/a.png", 9.99, true).
		WillReturnResult(sqlmock.NewResult(999, 1))
	mock.ExpectExec(regexp.QuoteMeta(syncCourseSequenceQuery)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.SaveCourse(context.Background(), course))
	assert.Equal(t, uint(999), course.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_SaveCourseWrapsErrors(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)
	boom := errors.New("connection reset")

	mock.ExpectQuery(regexp.QuoteMeta(insertCourseQuery)).WillReturnError(boom)

	err := store.SaveCourse(context.Background(), &model.Course{Title: "x"})
	assert.ErrorIs(t, err, boom)
}

func TestPostgreSQLStore_DeleteCourseByID(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteCourseQuery)).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, store.DeleteCourseByID(context.Background(), 5))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLStore_CatalogStats(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectQuery(regexp.QuoteMeta(catalogStatsQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "featured", "categories"}).AddRow(10, 4, 3))

	stats, err := store.CatalogStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, &model.CatalogStats{TotalCourses: 10, FeaturedCourses: 4, Categories: 3}, stats)
}

func TestPostgreSQLStore_Initialize(t *testing.T) {
	store, mock := newMockPostgreSQLStore(t)

	mock.ExpectExec(regexp.QuoteMeta(coursesTable)).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta(categoryIndex)).WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, store.Init())
	assert.NoError(t, mock.ExpectationsWereMet())
}
