package category

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/satang-labs/ledger-server/internal/handlers/v1/apierror"
	"github.com/satang-labs/ledger-server/internal/service"
	"github.com/satang-labs/ledger-server/internal/storage/category"
)

// Category is the API response model for a category.
type Category struct {
	ID       string  `json:"id" doc:"Category UUID"`
	Type     string  `json:"type" doc:"expense or income"`
	Name     string  `json:"name" doc:"Display name"`
	ParentID *string `json:"parentID,omitempty" doc:"Parent category UUID"`
}

func toAPI(c *category.Category) Category {
	out := Category{
		ID:   c.ID.String(),
		Type: string(c.Type),
		Name: c.Name,
	}
	if c.ParentID != nil {
		s := c.ParentID.String()
		out.ParentID = &s
	}
	return out
}

// CreateCategoryBody is the request body for creating a category.
type CreateCategoryBody struct {
	Type     string `json:"type" required:"true" enum:"expense,income" doc:"Category type"`
	Name     string `json:"name" required:"true" doc:"Display name"`
	ParentID string `json:"parentID,omitempty" doc:"Parent category UUID, must share the type"`
}

// CreateCategoryInput is the Huma input for creating a category.
type CreateCategoryInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
	Body    CreateCategoryBody
}

// CreateCategoryOutput is the Huma output for creating a category.
type CreateCategoryOutput struct {
	Body Category
}

// categoryService is the interface for category operations.
type categoryService interface {
	CreateCategory(ctx context.Context, ownerID uuid.UUID, in service.CreateCategoryInput) (*category.Category, error)
	ListCategories(ctx context.Context, ownerID uuid.UUID) ([]*category.Category, error)
}

// Handler handles /v1/categories.
type Handler struct {
	CategoryService categoryService
}

// NewHandler creates a new category Handler.
func NewHandler(svc categoryService) *Handler {
	return &Handler{CategoryService: svc}
}

// ListCategoriesInput is the Huma input for listing categories.
type ListCategoriesInput struct {
	OwnerID string `header:"X-User-ID" required:"true" doc:"Authenticated user UUID"`
}

// ListCategoriesResponseBody is the response body for listing categories.
type ListCategoriesResponseBody struct {
	Categories []Category `json:"categories" doc:"All of the owner's categories"`
}

// ListCategoriesOutput is the Huma output for listing categories.
type ListCategoriesOutput struct {
	Body ListCategoriesResponseBody
}

// Register registers the category endpoints with the Huma API.
func (h *Handler) Register(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-category",
		Method:        http.MethodPost,
		Path:          "/v1/categories",
		Summary:       "Create category",
		Tags:          []string{"Categories"},
		DefaultStatus: http.StatusCreated,
	}, h.handleCreate)

	huma.Register(api, huma.Operation{
		OperationID: "list-categories",
		Method:      http.MethodGet,
		Path:        "/v1/categories",
		Summary:     "List categories",
		Tags:        []string{"Categories"},
	}, h.handleList)
}

func (h *Handler) handleCreate(ctx context.Context, input *CreateCategoryInput) (*CreateCategoryOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	in := service.CreateCategoryInput{
		Type: category.CategoryType(input.Body.Type),
		Name: input.Body.Name,
	}
	if input.Body.ParentID != "" {
		parentID, err := uuid.FromString(input.Body.ParentID)
		if err != nil {
			return nil, huma.NewError(http.StatusBadRequest, "invalid parentID", err)
		}
		in.ParentID = &parentID
	}

	created, err := h.CategoryService.CreateCategory(ctx, ownerID, in)
	if err != nil {
		return nil, apierror.Map(err, "failed to create category")
	}
	return &CreateCategoryOutput{Body: toAPI(created)}, nil
}

func (h *Handler) handleList(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	ownerID, err := apierror.OwnerID(input.OwnerID)
	if err != nil {
		return nil, err
	}

	categories, err := h.CategoryService.ListCategories(ctx, ownerID)
	if err != nil {
		return nil, apierror.Map(err, "failed to list categories")
	}

	resp := ListCategoriesResponseBody{Categories: make([]Category, len(categories))}
	for i, c := range categories {
		resp.Categories[i] = toAPI(c)
	}
	return &ListCategoriesOutput{Body: resp}, nil
}
