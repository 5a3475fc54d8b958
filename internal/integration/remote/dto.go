package remote

import (
	"github.com/shopspring/decimal"

	"github.com/expense-tracker/core/internal/domain/entity"
)

// transactionDTO is the wire shape of a transaction record.
type transactionDTO struct {
	ID         int64           `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	CategoryID int64           `json:"categoryId"`
	Note       string          `json:"note,omitempty"`
	Date       int64           `json:"date"`
	Location   string          `json:"location,omitempty"`
	ImageURL   string          `json:"imageUrl,omitempty"`
	UpdatedAt  int64           `json:"updatedAt"`
}

func transactionToDTO(t *entity.Transaction) transactionDTO {
	return transactionDTO{
		ID:         t.ID,
		Amount:     t.Amount,
		Name:       t.Name,
		Type:       string(t.Type),
		CategoryID: t.CategoryID,
		Note:       t.Note,
		Date:       t.Date,
		Location:   t.Location,
		ImageURL:   t.ImageURL,
		UpdatedAt:  t.UpdatedAt,
	}
}

func (d transactionDTO) toEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:         d.ID,
		Amount:     d.Amount,
		Name:       d.Name,
		Type:       entity.TransactionType(d.Type),
		CategoryID: d.CategoryID,
		Note:       d.Note,
		Date:       d.Date,
		Location:   d.Location,
		ImageURL:   d.ImageURL,
		UpdatedAt:  d.UpdatedAt,
	}
}

// categoryDTO is the wire shape of a category record.
type categoryDTO struct {
	ID        int64            `json:"id"`
	Type      string           `json:"type"`
	Title     string           `json:"title"`
	Icon      string           `json:"icon,omitempty"`
	Limit     *decimal.Decimal `json:"limit,omitempty"`
	UpdatedAt int64            `json:"updatedAt"`
}

func categoryToDTO(c *entity.Category) categoryDTO {
	return categoryDTO{
		ID:        c.ID,
		Type:      string(c.Type),
		Title:     c.Title,
		Icon:      c.Icon,
		Limit:     c.Limit,
		UpdatedAt: c.UpdatedAt,
	}
}

func (d categoryDTO) toEntity() *entity.Category {
	return &entity.Category{
		ID:        d.ID,
		Type:      entity.CategoryType(d.Type),
		Title:     d.Title,
		Icon:      d.Icon,
		Limit:     d.Limit,
		UpdatedAt: d.UpdatedAt,
	}
}

// statusResponse is the generic relay acknowledgement.
type statusResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
