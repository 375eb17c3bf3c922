package data

import (
	"time"

	"fridgepick.pl/api/internal/recommend"
)

type ProductDTO struct {
	PK         string     `dynamodbav:"PK"`
	SK         string     `dynamodbav:"SK"`
	Name       string     `dynamodbav:"name"`
	Quantity   float64    `dynamodbav:"quantity"`
	Unit       string     `dynamodbav:"unit"`
	ExpiresAt  *time.Time `dynamodbav:"expiresAt"`
	CreateTime time.Time  `dynamodbav:"createTime"`
	UpdateTime time.Time  `dynamodbav:"updateTime"`
}

func (p ProductDTO) ToProduct() recommend.Product {
	return recommend.Product{
		Name:      p.Name,
		Quantity:  p.Quantity,
		Unit:      recommend.Unit(p.Unit),
		ExpiresAt: p.ExpiresAt,
	}
}

type ProductInputDTO struct {
	Name      *string    `dynamodbav:"name"`
	Quantity  *float64   `dynamodbav:"quantity"`
	Unit      *string    `dynamodbav:"unit"`
	ExpiresAt *time.Time `dynamodbav:"expiresAt"`
}

type ProductRepository interface {
	Repository[ProductDTO, ProductInputDTO]
}

func ToProducts(items []ProductDTO) []recommend.Product {
	products := make([]recommend.Product, len(items))
	for i, item := range items {
		products[i] = item.ToProduct()
	}
	return products
}
