package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// maxTreeDepth tope de profundidad al recorrer la jerarquía. Un árbol sano
// nunca se acerca a este valor; alcanzarlo indica punteros de padre corruptos.
const maxTreeDepth = 64

// UseCase mantiene la jerarquía de categorías: level y path materializados,
// árbol navegable y esquemas de atributos por categoría.
type UseCase struct {
	repo repository.CategoryRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(repo repository.CategoryRepository) *UseCase {
	return &UseCase{repo: repo}
}

// Create crea una categoría calculando level y path a partir del padre.
// Raíz: level 0, path [code]. Con padre: level = padre.level + 1,
// path = padre.path + [code].
func (uc *UseCase) Create(userID string, in dto.CreateCategoryRequest) (*entity.Category, error) {
	if in.Name == "" || in.Code == "" {
		return nil, domain.ErrInvalidInput
	}
	if existing, err := uc.repo.GetByCode(in.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicateCode
	}

	level := 0
	path := []string{in.Code}
	if in.ParentID != "" {
		parent, err := uc.repo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
		level = parent.Level + 1
		path = append(append([]string{}, parent.Path...), in.Code)
	}

	if err := validateAttributes(in.Attributes); err != nil {
		return nil, err
	}

	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}
	attrs := in.Attributes
	if attrs == nil {
		attrs = []entity.CategoryAttribute{}
	}

	now := time.Now()
	category := &entity.Category{
		ID:                  uuid.New().String(),
		Name:                in.Name,
		Code:                in.Code,
		Description:         in.Description,
		ParentID:            in.ParentID,
		Level:               level,
		Path:                path,
		Icon:                in.Icon,
		DisplayOrder:        in.DisplayOrder,
		Visible:             visible,
		Attributes:          attrs,
		MinStockThreshold:   in.MinStockThreshold,
		DefaultReorderLevel: in.DefaultReorderLevel,
		StorageRequirements: in.StorageRequirements,
		CreatedAt:           now,
		UpdatedAt:           now,
		CreatedBy:           userID,
	}
	if err := uc.repo.Insert(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update modifica campos editables de una categoría. Code, ParentID, Level y
// Path son inmutables por esta vía; los punteros en nil no cambian nada.
func (uc *UseCase) Update(categoryID, userID string, in dto.UpdateCategoryRequest) (*entity.Category, error) {
	category, err := uc.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		category.Name = *in.Name
	}
	if in.Description != nil {
		category.Description = *in.Description
	}
	if in.Icon != nil {
		category.Icon = *in.Icon
	}
	if in.DisplayOrder != nil {
		category.DisplayOrder = *in.DisplayOrder
	}
	if in.Visible != nil {
		category.Visible = *in.Visible
	}
	if in.Attributes != nil {
		if err := validateAttributes(*in.Attributes); err != nil {
			return nil, err
		}
		category.Attributes = *in.Attributes
	}
	if in.MinStockThreshold != nil {
		category.MinStockThreshold = in.MinStockThreshold
	}
	if in.DefaultReorderLevel != nil {
		category.DefaultReorderLevel = in.DefaultReorderLevel
	}
	if in.StorageRequirements != nil {
		category.StorageRequirements = *in.StorageRequirements
	}
	category.UpdatedAt = time.Now()
	category.UpdatedBy = userID

	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete borra una categoría. Falla con ErrHasChildren si otra categoría la
// referencia como padre. No se verifica si productos la referencian.
func (uc *UseCase) Delete(categoryID string) error {
	category, err := uc.repo.GetByID(categoryID)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	hasChildren, err := uc.repo.HasChildren(categoryID)
	if err != nil {
		return err
	}
	if hasChildren {
		return domain.ErrHasChildren
	}
	return uc.repo.Delete(categoryID)
}

// Get devuelve una categoría por id.
func (uc *UseCase) Get(categoryID string) (*entity.Category, error) {
	category, err := uc.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

// GetByCode devuelve una categoría por su código único.
func (uc *UseCase) GetByCode(code string) (*entity.Category, error) {
	category, err := uc.repo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return category, nil
}

// Roots devuelve las categorías de nivel 0 ordenadas por display_order.
func (uc *UseCase) Roots() ([]*entity.Category, error) {
	roots, err := uc.repo.ListRoots()
	if err != nil {
		return nil, err
	}
	sortCategories(roots)
	return roots, nil
}

// Children devuelve los hijos directos de una categoría ordenados por display_order.
func (uc *UseCase) Children(categoryID string) ([]*entity.Category, error) {
	category, err := uc.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	children, err := uc.repo.ListChildren(categoryID)
	if err != nil {
		return nil, err
	}
	sortCategories(children)
	return children, nil
}

// Search busca categorías por nombre o código.
func (uc *UseCase) Search(query string, limit int) ([]*entity.Category, error) {
	if query == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	return uc.repo.Search(query, limit)
}

// Tree construye el bosque completo desde las raíces (level 0), con los hijos
// de cada nodo ordenados por display_order. El recorrido lleva un conjunto de
// visitados y un tope de profundidad; un ciclo o una categoría inalcanzable
// desde las raíces se reporta como ErrCorruptHierarchy en vez de colgarse.
func (uc *UseCase) Tree() ([]*entity.CategoryTreeNode, error) {
	all, err := uc.repo.ListAll()
	if err != nil {
		return nil, err
	}

	byParent := make(map[string][]*entity.Category)
	for _, c := range all {
		byParent[c.ParentID] = append(byParent[c.ParentID], c)
	}
	for _, siblings := range byParent {
		sortCategories(siblings)
	}

	visited := make(map[string]bool, len(all))
	var build func(c *entity.Category, depth int) (*entity.CategoryTreeNode, error)
	build = func(c *entity.Category, depth int) (*entity.CategoryTreeNode, error) {
		if depth > maxTreeDepth || visited[c.ID] {
			return nil, domain.ErrCorruptHierarchy
		}
		visited[c.ID] = true
		node := &entity.CategoryTreeNode{
			ID:          c.ID,
			Name:        c.Name,
			Code:        c.Code,
			Description: c.Description,
			Level:       c.Level,
			Icon:        c.Icon,
			Visible:     c.Visible,
			Children:    []*entity.CategoryTreeNode{},
		}
		for _, child := range byParent[c.ID] {
			childNode, err := build(child, depth+1)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, childNode)
		}
		return node, nil
	}

	forest := make([]*entity.CategoryTreeNode, 0, len(byParent[""]))
	for _, root := range byParent[""] {
		node, err := build(root, 0)
		if err != nil {
			return nil, err
		}
		forest = append(forest, node)
	}

	// Un nodo no visitado no es alcanzable desde ninguna raíz: su cadena de
	// padres forma un ciclo o apunta a una categoría inexistente.
	if len(visited) != len(all) {
		return nil, domain.ErrCorruptHierarchy
	}
	return forest, nil
}

// Path resuelve cada código del path de la categoría a su resumen, de la raíz
// hasta la propia categoría. Un código sin documento indica jerarquía corrupta.
func (uc *UseCase) Path(categoryID string) ([]entity.CategorySummary, error) {
	category, err := uc.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	out := make([]entity.CategorySummary, 0, len(category.Path))
	for _, code := range category.Path {
		c, err := uc.repo.GetByCode(code)
		if err != nil {
			return nil, err
		}
		if c == nil {
			return nil, domain.ErrCorruptHierarchy
		}
		out = append(out, entity.CategorySummary{
			ID:    c.ID,
			Name:  c.Name,
			Code:  c.Code,
			Level: c.Level,
		})
	}
	return out, nil
}

// AddAttribute agrega un atributo al esquema de la categoría. El nombre es
// único dentro de la categoría.
func (uc *UseCase) AddAttribute(categoryID, userID string, attr entity.CategoryAttribute) (*entity.Category, error) {
	if attr.Name == "" || attr.DataType == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	for _, existing := range category.Attributes {
		if existing.Name == attr.Name {
			return nil, domain.ErrDuplicateAttribute
		}
	}
	category.Attributes = append(category.Attributes, attr)
	category.UpdatedAt = time.Now()
	category.UpdatedBy = userID
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// UpdateAttribute reemplaza el atributo llamado name. Si el nuevo nombre
// difiere no puede chocar con otro atributo existente.
func (uc *UseCase) UpdateAttribute(categoryID, userID, name string, attr entity.CategoryAttribute) (*entity.Category, error) {
	if attr.Name == "" || attr.DataType == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	idx := -1
	for i, existing := range category.Attributes {
		if existing.Name == name {
			idx = i
			continue
		}
		if existing.Name == attr.Name {
			return nil, domain.ErrDuplicateAttribute
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	category.Attributes[idx] = attr
	category.UpdatedAt = time.Now()
	category.UpdatedBy = userID
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// RemoveAttribute elimina el atributo llamado name del esquema.
func (uc *UseCase) RemoveAttribute(categoryID, userID, name string) (*entity.Category, error) {
	category, err := uc.repo.GetByID(categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}

	idx := -1
	for i, existing := range category.Attributes {
		if existing.Name == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}
	category.Attributes = append(category.Attributes[:idx], category.Attributes[idx+1:]...)
	category.UpdatedAt = time.Now()
	category.UpdatedBy = userID
	if err := uc.repo.Update(category); err != nil {
		return nil, err
	}
	return category, nil
}

// validateAttributes verifica unicidad de nombre dentro del esquema.
func validateAttributes(attrs []entity.CategoryAttribute) error {
	seen := make(map[string]bool, len(attrs))
	for _, attr := range attrs {
		if attr.Name == "" || attr.DataType == "" {
			return domain.ErrInvalidInput
		}
		if seen[attr.Name] {
			return domain.ErrDuplicateAttribute
		}
		seen[attr.Name] = true
	}
	return nil
}

func sortCategories(categories []*entity.Category) {
	sort.SliceStable(categories, func(i, j int) bool {
		if categories[i].DisplayOrder != categories[j].DisplayOrder {
			return categories[i].DisplayOrder < categories[j].DisplayOrder
		}
		return categories[i].Name < categories[j].Name
	})
}
