package product

import "time"

// ProductDTO is the API representation of a product, hydrated with the name
// of its category.
type ProductDTO struct {
	ID            string    `json:"id"`
	Nombre        string    `json:"nombre"`
	Cantidad      int       `json:"cantidad"`
	Descripcion   *string   `json:"descripcion"`
	CategoriaID   int       `json:"categoria_id"`
	Categoria     string    `json:"categoria"`
	FechaCreacion time.Time `json:"fecha_creacion"`
}

func newProductDTO(record productRecord) *ProductDTO {
	return &ProductDTO{
		ID:            record.ID,
		Nombre:        record.Name,
		Cantidad:      record.Quantity,
		Descripcion:   record.Description,
		CategoriaID:   record.CategoryID,
		Categoria:     record.CategoryName,
		FechaCreacion: record.CreatedAt,
	}
}
