package entity

import "github.com/shopspring/decimal"

// DocumentItem representa una línea de detalle de un documento. Pertenece en
// exclusiva a su documento (se elimina en cascada con él). ProductID es una
// referencia blanda: el producto puede haber cambiado o no existir ya.
type DocumentItem struct {
	ID          int64
	DocumentID  int64
	ProductID   *int64
	Name        string
	Description string
	Quantity    decimal.Decimal
	Price       decimal.Decimal // precio unitario
	Total       decimal.Decimal // quantity * price, calculado al escribir, nunca recalculado
}
