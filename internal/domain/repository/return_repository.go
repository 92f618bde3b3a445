package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ReturnRepository define el puerto del registro de devoluciones (append-only).
type ReturnRepository interface {
	Create(ret *entity.Return) error
	List(limit, offset int) ([]*entity.Return, error)
}
