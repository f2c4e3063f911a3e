package database

import (
	"context"
	"math"
	"testing"

	"github.com/sahilchouksey/course-catalog/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreSearchPastLastPage(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveCourse(ctx, &model.Course{Title: "Kubernetes Basics", Category: "Cloud", Price: 10}))
	}

	slice, err := store.SearchCoursesByTitle(ctx, "kub", 0, 2)
	require.NoError(t, err)
	assert.Len(t, slice.Content, 2)
	assert.True(t, slice.HasNext)

	for _, page := range []int{5, 922337203685477581, math.MaxInt} {
		slice, err := store.SearchCoursesByTitle(ctx, "kub", page, 10)
		require.NoError(t, err)
		assert.Empty(t, slice.Content)
		assert.False(t, slice.HasNext)
		assert.Equal(t, page, slice.Page)
	}
}

func TestMemoryStoreNextIDDoesNotWrap(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	top := &model.Course{ID: math.MaxInt64, Title: "Last", Category: "Edge", Price: 10}
	require.NoError(t, store.SaveCourse(ctx, top))

	next := &model.Course{Title: "Next", Category: "Edge", Price: 10}
	require.NoError(t, store.SaveCourse(ctx, next))
	assert.NotZero(t, next.ID)
	assert.NotEqual(t, top.ID, next.ID)

	got, err := store.FindCourseByID(ctx, top.ID)
	require.NoError(t, err)
	assert.Equal(t, "Last", got.Title)
}
