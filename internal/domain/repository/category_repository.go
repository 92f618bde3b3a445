package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de la colección de documentos de categorías.
// Cada categoría se lee y escribe como documento completo; la lógica de jerarquía
// (level, path, árbol) vive en el caso de uso, no en el almacén.
type CategoryRepository interface {
	// Insert falla con ErrDuplicateCode si el código ya existe.
	Insert(category *entity.Category) error
	// Update reemplaza el documento completo.
	Update(category *entity.Category) error
	Delete(id string) error
	GetByID(id string) (*entity.Category, error)
	GetByCode(code string) (*entity.Category, error)
	ListAll() ([]*entity.Category, error)
	ListRoots() ([]*entity.Category, error)
	ListChildren(parentID string) ([]*entity.Category, error)
	HasChildren(parentID string) (bool, error)
	Search(query string, limit int) ([]*entity.Category, error)
}
