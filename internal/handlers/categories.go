package handlers

import (
	"net/http"

	"finbook/internal/apierr"
	"finbook/internal/httpx"
	"finbook/internal/schema"
	"finbook/internal/services"
)

var listCategoriesSchema = schema.NewObject(
	schema.Field{Name: "include_inactive", Coerce: schema.Bool()},
)

var createCategorySchema = schema.NewObject(
	schema.Field{Name: "name", Required: true, Coerce: schema.String(1, 100)},
	schema.Field{Name: "type", Required: true, Coerce: schema.Enum("income", "expense")},
	schema.Field{Name: "parent_id", Coerce: schema.ID()},
)

var updateCategorySchema = schema.NewObject(
	schema.Field{Name: "name", Coerce: schema.String(1, 100)},
)

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	values, details := listCategoriesSchema.ValidateQuery(r.URL.Query())
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	categories, err := h.categories.List(r.Context(), userID, schema.BoolOr(values, "include_inactive", false))
	if err != nil {
		h.fail(w, r, apierr.ClassifyCategory, err)
		return
	}
	httpx.Data(w, r, http.StatusOK, categories)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	categoryID, apiErr := idParam(r, "id")
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	category, err := h.categories.Get(r.Context(), userID, categoryID)
	if err != nil {
		h.fail(w, r, apierr.ClassifyCategory, err)
		return
	}
	httpx.Data(w, r, http.StatusOK, category)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	body, apiErr := httpx.DecodeBody(r)
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	values, details := createCategorySchema.Validate(body)
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	name, _ := schema.GetString(values, "name")
	categoryType, _ := schema.GetString(values, "type")
	category, err := h.categories.Create(r.Context(), userID, services.CreateCategoryCommand{
		Name:     name,
		Type:     categoryType,
		ParentID: optInt(values, "parent_id"),
	})
	if err != nil {
		h.fail(w, r, apierr.ClassifyCategory, err)
		return
	}
	httpx.Data(w, r, http.StatusCreated, category)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	categoryID, apiErr := idParam(r, "id")
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	body, apiErr := httpx.DecodeBody(r)
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	values, details := updateCategorySchema.Validate(body)
	if len(details) > 0 {
		httpx.Error(w, r, apierr.Validation(details))
		return
	}
	category, err := h.categories.Update(r.Context(), userID, categoryID, services.UpdateCategoryCommand{
		Name: optString(values, "name"),
	})
	if err != nil {
		h.fail(w, r, apierr.ClassifyCategory, err)
		return
	}
	httpx.Data(w, r, http.StatusOK, category)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	categoryID, apiErr := idParam(r, "id")
	if apiErr != nil {
		httpx.Error(w, r, apiErr)
		return
	}
	if err := h.categories.Deactivate(r.Context(), userID, categoryID); err != nil {
		h.fail(w, r, apierr.ClassifyCategory, err)
		return
	}
	httpx.NoContent(w, r)
}
