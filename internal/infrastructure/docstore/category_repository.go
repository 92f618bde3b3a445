// Package docstore persiste las categorías como documentos JSONB en una
// colección propia (tabla categories: id + doc). Cada categoría se lee y
// escribe como documento completo; los índices de expresión sobre
// doc->>'code', doc->>'parent_id' y doc->>'level' cubren las consultas de
// jerarquía sin columnas dedicadas.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// Querier abstrae pool y transacción, igual que en el paquete postgres.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CategoryRepo implementación de CategoryRepository sobre la colección JSONB.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de la colección de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Insert inserta el documento. Falla con ErrDuplicateCode si el código ya
// existe (índice único sobre doc->>'code').
func (r *CategoryRepo) Insert(category *entity.Category) error {
	doc, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("marshal categoria: %w", err)
	}
	_, err = r.q.Exec(context.Background(),
		`INSERT INTO categories (id, doc) VALUES ($1, $2)`, category.ID, doc)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateCode
		}
		return fmt.Errorf("insert categoria: %w", err)
	}
	return nil
}

// Update reemplaza el documento completo.
func (r *CategoryRepo) Update(category *entity.Category) error {
	doc, err := json.Marshal(category)
	if err != nil {
		return fmt.Errorf("marshal categoria: %w", err)
	}
	tag, err := r.q.Exec(context.Background(),
		`UPDATE categories SET doc = $2 WHERE id = $1`, category.ID, doc)
	if err != nil {
		return fmt.Errorf("update categoria: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el documento por id.
func (r *CategoryRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete categoria: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene una categoría por id. Devuelve nil sin error si no existe.
func (r *CategoryRepo) GetByID(id string) (*entity.Category, error) {
	return r.get(`SELECT doc FROM categories WHERE id = $1`, id)
}

// GetByCode obtiene una categoría por su código único.
func (r *CategoryRepo) GetByCode(code string) (*entity.Category, error) {
	return r.get(`SELECT doc FROM categories WHERE doc->>'code' = $1`, code)
}

// ListAll devuelve la colección completa.
func (r *CategoryRepo) ListAll() ([]*entity.Category, error) {
	return r.list(`SELECT doc FROM categories ORDER BY doc->>'code'`)
}

// ListRoots devuelve las categorías de nivel 0.
func (r *CategoryRepo) ListRoots() ([]*entity.Category, error) {
	return r.list(`SELECT doc FROM categories WHERE (doc->>'level')::int = 0 ORDER BY doc->>'code'`)
}

// ListChildren devuelve los hijos directos de una categoría.
func (r *CategoryRepo) ListChildren(parentID string) ([]*entity.Category, error) {
	return r.list(`SELECT doc FROM categories WHERE doc->>'parent_id' = $1 ORDER BY doc->>'code'`, parentID)
}

// HasChildren indica si alguna categoría referencia a parentID como padre.
func (r *CategoryRepo) HasChildren(parentID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM categories WHERE doc->>'parent_id' = $1)`, parentID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has children: %w", err)
	}
	return exists, nil
}

// Search busca por nombre o código (case-insensitive).
func (r *CategoryRepo) Search(query string, limit int) ([]*entity.Category, error) {
	return r.list(`
		SELECT doc FROM categories
		WHERE doc->>'name' ILIKE '%' || $1 || '%' OR doc->>'code' ILIKE '%' || $1 || '%'
		ORDER BY doc->>'code' LIMIT $2`, query, limit)
}

func (r *CategoryRepo) get(query string, args ...any) (*entity.Category, error) {
	var doc []byte
	err := r.q.QueryRow(context.Background(), query, args...).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get categoria: %w", err)
	}
	var c entity.Category
	if err := json.Unmarshal(doc, &c); err != nil {
		return nil, fmt.Errorf("unmarshal categoria: %w", err)
	}
	return &c, nil
}

func (r *CategoryRepo) list(query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list categorias: %w", err)
	}
	defer rows.Close()

	var out []*entity.Category
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan categoria: %w", err)
		}
		var c entity.Category
		if err := json.Unmarshal(doc, &c); err != nil {
			return nil, fmt.Errorf("unmarshal categoria: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
