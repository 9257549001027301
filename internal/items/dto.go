package items

import (
	"time"

	"github.com/easemart/easemart-backend/pkg/db/models"
	"github.com/google/uuid"
)

// ItemDTO is the transport shape for catalog entries.
type ItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Price       *float64  `json:"price"`
	Quantity    *int      `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateItemInput is the body accepted when creating a catalog entry.
type CreateItemInput struct {
	Name        string   `json:"name" validate:"required"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

// UpdateItemInput carries partial updates. Nil means "leave unchanged".
type UpdateItemInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity    *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
}

func FromModel(it *models.Item) *ItemDTO {
	if it == nil {
		return nil
	}
	return &ItemDTO{
		ID:          it.ID,
		Name:        it.Name,
		Description: it.Description,
		Category:    it.Category,
		Price:       it.Price,
		Quantity:    it.Quantity,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

func (c CreateItemInput) ToModel() *models.Item {
	return &models.Item{
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Price:       c.Price,
		Quantity:    c.Quantity,
	}
}

func (u UpdateItemInput) Fields() map[string]any {
	fields := map[string]any{}
	if u.Name != nil {
		fields["name"] = *u.Name
	}
	if u.Description != nil {
		fields["description"] = *u.Description
	}
	if u.Category != nil {
		fields["category"] = *u.Category
	}
	if u.Price != nil {
		fields["price"] = *u.Price
	}
	if u.Quantity != nil {
		fields["quantity"] = *u.Quantity
	}
	return fields
}
