package products

import (
	"time"

	"fridgepick.pl/api/internal/data"
)

type Product struct {
	Id         string     `json:"productId"`
	Name       string     `json:"name"`
	Quantity   float64    `json:"quantity"`
	Unit       string     `json:"unit"`
	ExpiresAt  *time.Time `json:"expiresAt,omitempty"`
	CreateTime time.Time  `json:"createTime"`
	UpdateTime time.Time  `json:"updateTime"`
}

func NewProduct(product data.ProductDTO) Product {
	return Product{
		Id:         product.SK,
		Name:       product.Name,
		Quantity:   product.Quantity,
		Unit:       product.Unit,
		ExpiresAt:  product.ExpiresAt,
		CreateTime: product.CreateTime,
		UpdateTime: product.UpdateTime,
	}
}

type CreateProductInput struct {
	Name      *string    `json:"name" validate:"required,min=1,max=100"`
	Quantity  *float64   `json:"quantity" validate:"required,gte=0"`
	Unit      *string    `json:"unit" validate:"required,unit"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (p *CreateProductInput) ToData() data.ProductInputDTO {
	return data.ProductInputDTO{
		Name:      p.Name,
		Quantity:  p.Quantity,
		Unit:      p.Unit,
		ExpiresAt: p.ExpiresAt,
	}
}

type ProductInput struct {
	Name      *string    `json:"name" validate:"omitempty,min=1,max=100"`
	Quantity  *float64   `json:"quantity" validate:"omitempty,gte=0"`
	Unit      *string    `json:"unit" validate:"omitempty,unit"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

func (p *ProductInput) ToData() data.ProductInputDTO {
	return data.ProductInputDTO{
		Name:      p.Name,
		Quantity:  p.Quantity,
		Unit:      p.Unit,
		ExpiresAt: p.ExpiresAt,
	}
}
