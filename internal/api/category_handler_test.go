package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-api/internal/domain"
)

func createTestCategory(t *testing.T, router http.Handler, req CreateCategoryRequest) domain.Category {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/categories", req)
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	var category domain.Category
	decodeBody(t, rec, &category)
	return category
}

func TestCreateCategory(t *testing.T) {
	t.Parallel()

	t.Run("creates category", func(t *testing.T) {
		t.Parallel()
		userID := uuid.New()
		router := taskRouterFor(t, userID, newFakeTaskStore(), newFakeCategoryStore())

		category := createTestCategory(t, router, CreateCategoryRequest{
			Name:        "Work",
			Description: "office things",
			Color:       "#ff0000",
		})

		assert.Equal(t, userID, category.UserID)
		assert.Equal(t, "Work", category.Name)
		assert.Equal(t, "#ff0000", category.Color)
	})

	t.Run("missing name is a bad request", func(t *testing.T) {
		t.Parallel()
		router := taskRouterFor(t, uuid.New(), newFakeTaskStore(), newFakeCategoryStore())

		rec := doJSON(t, router, http.MethodPost, "/api/categories", CreateCategoryRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetCategory(t *testing.T) {
	t.Parallel()

	taskStore := newFakeTaskStore()
	categoryStore := newFakeCategoryStore()
	owner := uuid.New()
	ownerRouter := taskRouterFor(t, owner, taskStore, categoryStore)

	created := createTestCategory(t, ownerRouter, CreateCategoryRequest{Name: "Work"})

	t.Run("owner can fetch", func(t *testing.T) {
		rec := doJSON(t, ownerRouter, http.MethodGet, "/api/categories/"+created.ID.String(), nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var category domain.Category
		decodeBody(t, rec, &category)
		assert.Equal(t, created.ID, category.ID)
	})

	t.Run("another user sees not found", func(t *testing.T) {
		strangerRouter := taskRouterFor(t, uuid.New(), taskStore, categoryStore)

		rec := doJSON(t, strangerRouter, http.MethodGet, "/api/categories/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "Category not found")
	})
}

func TestListCategories(t *testing.T) {
	t.Parallel()

	taskStore := newFakeTaskStore()
	categoryStore := newFakeCategoryStore()
	ownerRouter := taskRouterFor(t, uuid.New(), taskStore, categoryStore)

	createTestCategory(t, ownerRouter, CreateCategoryRequest{Name: "Work"})
	createTestCategory(t, ownerRouter, CreateCategoryRequest{Name: "Home"})

	rec := doJSON(t, ownerRouter, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var categories []domain.Category
	decodeBody(t, rec, &categories)
	assert.Len(t, categories, 2)

	// Another user gets an empty JSON array, not null
	strangerRouter := taskRouterFor(t, uuid.New(), taskStore, categoryStore)
	rec = doJSON(t, strangerRouter, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())
}

func TestUpdateCategory(t *testing.T) {
	t.Parallel()

	taskStore := newFakeTaskStore()
	categoryStore := newFakeCategoryStore()
	owner := uuid.New()
	ownerRouter := taskRouterFor(t, owner, taskStore, categoryStore)

	created := createTestCategory(t, ownerRouter, CreateCategoryRequest{Name: "Work", Color: "#ff0000"})

	t.Run("applies partial update", func(t *testing.T) {
		name := "Office"
		rec := doJSON(t, ownerRouter, http.MethodPut, "/api/categories/"+created.ID.String(),
			UpdateCategoryRequest{Name: &name})
		require.Equal(t, http.StatusOK, rec.Code)

		var category domain.Category
		decodeBody(t, rec, &category)
		assert.Equal(t, "Office", category.Name)
		assert.Equal(t, "#ff0000", category.Color)
	})

	t.Run("another user cannot update", func(t *testing.T) {
		strangerRouter := taskRouterFor(t, uuid.New(), taskStore, categoryStore)

		name := "Hijacked"
		rec := doJSON(t, strangerRouter, http.MethodPut, "/api/categories/"+created.ID.String(),
			UpdateCategoryRequest{Name: &name})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Parallel()

	taskStore := newFakeTaskStore()
	categoryStore := newFakeCategoryStore()
	owner := uuid.New()
	ownerRouter := taskRouterFor(t, owner, taskStore, categoryStore)

	created := createTestCategory(t, ownerRouter, CreateCategoryRequest{Name: "Work"})

	t.Run("another user cannot delete", func(t *testing.T) {
		strangerRouter := taskRouterFor(t, uuid.New(), taskStore, categoryStore)

		rec := doJSON(t, strangerRouter, http.MethodDelete, "/api/categories/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("owner deletes with no content", func(t *testing.T) {
		rec := doJSON(t, ownerRouter, http.MethodDelete, "/api/categories/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = doJSON(t, ownerRouter, http.MethodGet, "/api/categories/"+created.ID.String(), nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
