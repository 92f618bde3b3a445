package catalog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Doble en memoria de la colección de documentos
// ──────────────────────────────────────────────────────────────────────────────

type memCategoryRepo struct {
	docs map[string]*entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{docs: make(map[string]*entity.Category)}
}

func (r *memCategoryRepo) Insert(c *entity.Category) error {
	for _, existing := range r.docs {
		if existing.Code == c.Code {
			return domain.ErrDuplicateCode
		}
	}
	copia := *c
	r.docs[c.ID] = &copia
	return nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	if _, ok := r.docs[c.ID]; !ok {
		return domain.ErrNotFound
	}
	copia := *c
	r.docs[c.ID] = &copia
	return nil
}

func (r *memCategoryRepo) Delete(id string) error {
	if _, ok := r.docs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.docs, id)
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	copia := *c
	return &copia, nil
}

func (r *memCategoryRepo) GetByCode(code string) (*entity.Category, error) {
	for _, c := range r.docs {
		if c.Code == code {
			copia := *c
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) ListAll() ([]*entity.Category, error) {
	out := make([]*entity.Category, 0, len(r.docs))
	for _, c := range r.docs {
		copia := *c
		out = append(out, &copia)
	}
	return out, nil
}

func (r *memCategoryRepo) ListRoots() ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.docs {
		if c.ParentID == "" {
			copia := *c
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) ListChildren(parentID string) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.docs {
		if c.ParentID == parentID {
			copia := *c
			out = append(out, &copia)
		}
	}
	return out, nil
}

func (r *memCategoryRepo) HasChildren(parentID string) (bool, error) {
	for _, c := range r.docs {
		if c.ParentID == parentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memCategoryRepo) Search(query string, limit int) ([]*entity.Category, error) {
	q := strings.ToLower(query)
	var out []*entity.Category
	for _, c := range r.docs {
		if len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(c.Name), q) || strings.Contains(strings.ToLower(c.Code), q) {
			copia := *c
			out = append(out, &copia)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const catUserID = "u-admin"

func newCatalogEnv() (*memCategoryRepo, *catalog.UseCase) {
	repo := newMemCategoryRepo()
	return repo, catalog.NewUseCase(repo)
}

func mustCreate(t *testing.T, uc *catalog.UseCase, name, code, parentID string) *entity.Category {
	t.Helper()
	c, err := uc.Create(catUserID, dto.CreateCategoryRequest{
		Name:     name,
		Code:     code,
		ParentID: parentID,
	})
	require.NoError(t, err)
	return c
}

func attr(name, dataType string) entity.CategoryAttribute {
	return entity.CategoryAttribute{Name: name, DisplayName: name, DataType: dataType}
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y jerarquía
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_RaizConNivelCeroYPathPropio(t *testing.T) {
	_, uc := newCatalogEnv()

	c := mustCreate(t, uc, "Electrónica", "ELEC", "")

	assert.Equal(t, 0, c.Level)
	assert.Equal(t, []string{"ELEC"}, c.Path)
	assert.True(t, c.Visible)
	assert.Equal(t, catUserID, c.CreatedBy)
}

func TestCreate_HijoHeredaNivelYPathDelPadre(t *testing.T) {
	_, uc := newCatalogEnv()
	parent := mustCreate(t, uc, "Electrónica", "ELEC", "")

	child := mustCreate(t, uc, "Portátiles", "LAPTOP", parent.ID)

	assert.Equal(t, 1, child.Level)
	assert.Equal(t, []string{"ELEC", "LAPTOP"}, child.Path)

	nieto := mustCreate(t, uc, "Gamer", "GAMER", child.ID)
	assert.Equal(t, 2, nieto.Level)
	assert.Equal(t, []string{"ELEC", "LAPTOP", "GAMER"}, nieto.Path)
}

func TestCreate_CodigoDuplicado_Rechazado(t *testing.T) {
	_, uc := newCatalogEnv()
	mustCreate(t, uc, "Electrónica", "ELEC", "")

	_, err := uc.Create(catUserID, dto.CreateCategoryRequest{Name: "Otra", Code: "ELEC"})
	assert.ErrorIs(t, err, domain.ErrDuplicateCode)
}

func TestCreate_PadreInexistente_NotFound(t *testing.T) {
	_, uc := newCatalogEnv()

	_, err := uc.Create(catUserID, dto.CreateCategoryRequest{
		Name: "Huérfana", Code: "HUER", ParentID: "cat-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_SinNombreOCodigo_EsInvalido(t *testing.T) {
	_, uc := newCatalogEnv()

	_, err := uc.Create(catUserID, dto.CreateCategoryRequest{Code: "X"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(catUserID, dto.CreateCategoryRequest{Name: "Sin código"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_AtributosRepetidosEnEsquema_Rechazados(t *testing.T) {
	_, uc := newCatalogEnv()

	_, err := uc.Create(catUserID, dto.CreateCategoryRequest{
		Name: "Electrónica", Code: "ELEC",
		Attributes: []entity.CategoryAttribute{attr("voltaje", "number"), attr("voltaje", "string")},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateAttribute)
}

// ──────────────────────────────────────────────────────────────────────────────
// Update y Delete
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_NoTocaCodeNiPath(t *testing.T) {
	_, uc := newCatalogEnv()
	c := mustCreate(t, uc, "Electrónica", "ELEC", "")

	nuevoNombre := "Electrónica y computación"
	updated, err := uc.Update(c.ID, catUserID, dto.UpdateCategoryRequest{Name: &nuevoNombre})
	require.NoError(t, err)

	assert.Equal(t, nuevoNombre, updated.Name)
	assert.Equal(t, "ELEC", updated.Code)
	assert.Equal(t, []string{"ELEC"}, updated.Path)
	assert.Equal(t, catUserID, updated.UpdatedBy)
}

func TestUpdate_NombreVacio_EsInvalido(t *testing.T) {
	_, uc := newCatalogEnv()
	c := mustCreate(t, uc, "Electrónica", "ELEC", "")

	vacio := ""
	_, err := uc.Update(c.ID, catUserID, dto.UpdateCategoryRequest{Name: &vacio})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDelete_ConHijos_Rechazado(t *testing.T) {
	repo, uc := newCatalogEnv()
	parent := mustCreate(t, uc, "Electrónica", "ELEC", "")
	mustCreate(t, uc, "Portátiles", "LAPTOP", parent.ID)

	err := uc.Delete(parent.ID)
	assert.ErrorIs(t, err, domain.ErrHasChildren)

	stored, _ := repo.GetByID(parent.ID)
	assert.NotNil(t, stored, "la categoría no debe borrarse")
}

func TestDelete_Hoja_Funciona(t *testing.T) {
	repo, uc := newCatalogEnv()
	parent := mustCreate(t, uc, "Electrónica", "ELEC", "")
	child := mustCreate(t, uc, "Portátiles", "LAPTOP", parent.ID)

	require.NoError(t, uc.Delete(child.ID))
	require.NoError(t, uc.Delete(parent.ID))

	stored, _ := repo.GetByID(parent.ID)
	assert.Nil(t, stored)
}

// ──────────────────────────────────────────────────────────────────────────────
// Árbol y path
// ──────────────────────────────────────────────────────────────────────────────

func TestTree_OrdenaHermanosPorDisplayOrder(t *testing.T) {
	_, uc := newCatalogEnv()
	root := mustCreate(t, uc, "Electrónica", "ELEC", "")

	segundo, err := uc.Create(catUserID, dto.CreateCategoryRequest{
		Name: "Tablets", Code: "TAB", ParentID: root.ID, DisplayOrder: 2,
	})
	require.NoError(t, err)
	primero, err := uc.Create(catUserID, dto.CreateCategoryRequest{
		Name: "Portátiles", Code: "LAPTOP", ParentID: root.ID, DisplayOrder: 1,
	})
	require.NoError(t, err)

	forest, err := uc.Tree()
	require.NoError(t, err)
	require.Len(t, forest, 1)
	require.Len(t, forest[0].Children, 2)
	assert.Equal(t, primero.ID, forest[0].Children[0].ID)
	assert.Equal(t, segundo.ID, forest[0].Children[1].ID)
}

func TestTree_CicloDePadres_ReportaCorrupcion(t *testing.T) {
	repo, uc := newCatalogEnv()
	a := mustCreate(t, uc, "A", "CAT-A", "")
	b := mustCreate(t, uc, "B", "CAT-B", a.ID)

	// Corrupción directa en el almacén: A pasa a ser hijo de B.
	docA, _ := repo.GetByID(a.ID)
	docA.ParentID = b.ID
	require.NoError(t, repo.Update(docA))

	_, err := uc.Tree()
	assert.ErrorIs(t, err, domain.ErrCorruptHierarchy)
}

func TestTree_PadreInexistente_ReportaCorrupcion(t *testing.T) {
	repo, uc := newCatalogEnv()
	a := mustCreate(t, uc, "A", "CAT-A", "")

	docA, _ := repo.GetByID(a.ID)
	docA.ParentID = "cat-fantasma"
	require.NoError(t, repo.Update(docA))

	_, err := uc.Tree()
	assert.ErrorIs(t, err, domain.ErrCorruptHierarchy)
}

func TestPath_ResuelveDeRaizAHoja(t *testing.T) {
	_, uc := newCatalogEnv()
	root := mustCreate(t, uc, "Electrónica", "ELEC", "")
	child := mustCreate(t, uc, "Portátiles", "LAPTOP", root.ID)

	path, err := uc.Path(child.ID)
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, "ELEC", path[0].Code)
	assert.Equal(t, 0, path[0].Level)
	assert.Equal(t, "LAPTOP", path[1].Code)
	assert.Equal(t, 1, path[1].Level)
}

func TestPath_CodigoDesaparecido_ReportaCorrupcion(t *testing.T) {
	repo, uc := newCatalogEnv()
	root := mustCreate(t, uc, "Electrónica", "ELEC", "")
	child := mustCreate(t, uc, "Portátiles", "LAPTOP", root.ID)

	// El padre se borra por fuera del caso de uso; el path del hijo queda colgado.
	require.NoError(t, repo.Delete(root.ID))

	_, err := uc.Path(child.ID)
	assert.ErrorIs(t, err, domain.ErrCorruptHierarchy)
}

// ──────────────────────────────────────────────────────────────────────────────
// Búsqueda
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_SinQuery_EsInvalido(t *testing.T) {
	_, uc := newCatalogEnv()

	_, err := uc.Search("", 10)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSearch_EncuentraPorNombreOCodigo(t *testing.T) {
	_, uc := newCatalogEnv()
	mustCreate(t, uc, "Electrónica", "ELEC", "")
	mustCreate(t, uc, "Ferretería", "FERR", "")

	res, err := uc.Search("elec", 10)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "ELEC", res[0].Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Esquema de atributos
// ──────────────────────────────────────────────────────────────────────────────

func TestAddAttribute_NombreUnicoPorCategoria(t *testing.T) {
	_, uc := newCatalogEnv()
	c := mustCreate(t, uc, "Electrónica", "ELEC", "")

	updated, err := uc.AddAttribute(c.ID, catUserID, attr("voltaje", "number"))
	require.NoError(t, err)
	require.Len(t, updated.Attributes, 1)

	_, err = uc.AddAttribute(c.ID, catUserID, attr("voltaje", "string"))
	assert.ErrorIs(t, err, domain.ErrDuplicateAttribute)
}

func TestUpdateAttribute_RenombrarSobreOtro_Rechazado(t *testing.T) {
	_, uc := newCatalogEnv()
	c := mustCreate(t, uc, "Electrónica", "ELEC", "")
	_, err := uc.AddAttribute(c.ID, catUserID, attr("voltaje", "number"))
	require.NoError(t, err)
	_, err = uc.AddAttribute(c.ID, catUserID, attr("peso", "number"))
	require.NoError(t, err)

	// Renombrar peso → voltaje choca con el existente.
	_, err = uc.UpdateAttribute(c.ID, catUserID, "peso", attr("voltaje", "number"))
	assert.ErrorIs(t, err, domain.ErrDuplicateAttribute)

	// Cambiar solo el tipo conservando el nombre sí es válido.
	updated, err := uc.UpdateAttribute(c.ID, catUserID, "peso", attr("peso", "string"))
	require.NoError(t, err)
	for _, a := range updated.Attributes {
		if a.Name == "peso" {
			assert.Equal(t, "string", a.DataType)
		}
	}
}

func TestUpdateAttribute_Inexistente_NotFound(t *testing.T) {
	_, uc := newCatalogEnv()
	c := mustCreate(t, uc, "Electrónica", "ELEC", "")

	_, err := uc.UpdateAttribute(c.ID, catUserID, "fantasma", attr("fantasma", "string"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRemoveAttribute_QuitaDelEsquema(t *testing.T) {
	_, uc := newCatalogEnv()
	c := mustCreate(t, uc, "Electrónica", "ELEC", "")
	_, err := uc.AddAttribute(c.ID, catUserID, attr("voltaje", "number"))
	require.NoError(t, err)

	updated, err := uc.RemoveAttribute(c.ID, catUserID, "voltaje")
	require.NoError(t, err)
	assert.Empty(t, updated.Attributes)

	_, err = uc.RemoveAttribute(c.ID, catUserID, "voltaje")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
