package dto

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/application/usecase/category"
	"github.com/expense-tracker/core/internal/domain/entity"
)

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	ID    int64    `json:"id,omitempty"`
	Type  string   `json:"type" binding:"required,oneof=expense income"`
	Title string   `json:"title" binding:"required,min=1,max=100"`
	Icon  string   `json:"icon,omitempty"`
	Limit *float64 `json:"limit,omitempty"`
}

// UpdateCategoryRequest represents the request body for category update.
type UpdateCategoryRequest struct {
	Title      *string  `json:"title,omitempty" binding:"omitempty,min=1,max=100"`
	Icon       *string  `json:"icon,omitempty"`
	Limit      *float64 `json:"limit,omitempty"`
	ClearLimit bool     `json:"clearLimit,omitempty"`
}

// CategoryResponse represents a single category in API responses.
type CategoryResponse struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Icon      string  `json:"icon,omitempty"`
	Limit     *string `json:"limit,omitempty"`
	UpdatedAt int64   `json:"updatedAt"`
	Reserved  bool    `json:"reserved"`
}

// CategoryMutationResponse represents the response for create/update.
type CategoryMutationResponse struct {
	Category     CategoryResponse `json:"category"`
	RemoteSynced bool             `json:"remoteSynced"`
}

// CategoryListResponse represents the response for listing categories.
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// DeleteCategoryResponse reports how the deletion went.
type DeleteCategoryResponse struct {
	Reassigned int64 `json:"reassigned"`
	Tombstoned bool  `json:"tombstoned"`
}

// ToCategoryResponse converts a CategoryOutput to a CategoryResponse DTO.
func ToCategoryResponse(cat *category.CategoryOutput) CategoryResponse {
	response := CategoryResponse{
		ID:        cat.ID,
		Type:      string(cat.Type),
		Title:     cat.Title,
		Icon:      cat.Icon,
		UpdatedAt: cat.UpdatedAt,
		Reserved:  cat.Reserved,
	}
	if cat.Limit != nil {
		limit := cat.Limit.String()
		response.Limit = &limit
	}
	return response
}

// ToCreateCategoryInput converts the request into the use-case input.
func (r *CreateCategoryRequest) ToCreateCategoryInput() category.CreateCategoryInput {
	input := category.CreateCategoryInput{
		ID:    r.ID,
		Type:  entity.CategoryType(r.Type),
		Title: r.Title,
		Icon:  r.Icon,
	}
	if r.Limit != nil {
		limit := decimal.NewFromFloat(*r.Limit)
		input.Limit = &limit
	}
	return input
}

// ToUpdateCategoryInput converts the request into the use-case input.
func (r *UpdateCategoryRequest) ToUpdateCategoryInput(id int64) category.UpdateCategoryInput {
	input := category.UpdateCategoryInput{
		ID:         id,
		Title:      r.Title,
		Icon:       r.Icon,
		ClearLimit: r.ClearLimit,
	}
	if r.Limit != nil {
		limit := decimal.NewFromFloat(*r.Limit)
		input.Limit = &limit
	}
	return input
}
