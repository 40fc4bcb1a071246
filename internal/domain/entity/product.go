package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o servicio del catálogo. Las líneas de
// documento copian nombre y precio al momento de emitir, por lo que editar
// un producto no altera documentos ya emitidos.
type Product struct {
	ID          int64
	Code        string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta neto (sin IVA)
	Unit        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
