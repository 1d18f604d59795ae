package service

import (
	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"

	"github.com/shopspring/decimal"
)

var cien = decimal.NewFromInt(100)

// CalcularAjuste calcula el monto con signo de un descuento o recargo.
// Cada ajuste se evalúa contra el subtotal original de la venta, no contra
// el total corriente. Descuentos devuelven un monto negativo.
//
// Reglas, en orden:
//  1. Porcentaje fuera de [0, 100] → ErrPorcentajeInvalido; monto fijo
//     negativo → ErrMontoInvalido. Estas validaciones corren antes que
//     cualquier otra.
//  2. Descuento (porcentual o fijo) mayor al subtotal → ErrDescuentoMayorQueSubtotal.
func CalcularAjuste(subtotal decimal.Decimal, ajuste dto.AjusteRequest) (decimal.Decimal, error) {
	var monto decimal.Decimal
	switch ajuste.Metodo {
	case "porcentaje":
		if ajuste.Valor.IsNegative() || ajuste.Valor.GreaterThan(cien) {
			return decimal.Zero, apperr.ErrPorcentajeInvalido
		}
		monto = subtotal.Mul(ajuste.Valor).Div(cien).Round(2)
	default: // fijo
		if ajuste.Valor.IsNegative() {
			return decimal.Zero, apperr.ErrMontoInvalido
		}
		monto = ajuste.Valor.Round(2)
	}

	if ajuste.Modo == "descuento" {
		if monto.GreaterThan(subtotal) {
			return decimal.Zero, apperr.ErrDescuentoMayorQueSubtotal
		}
		return monto.Neg(), nil
	}
	return monto, nil
}

// AplicarAjustes acumula una secuencia de ajustes sobre el subtotal.
// Devuelve el ajuste total con signo y el total final. Si la acumulación de
// descuentos dejara el total por debajo de cero, se rechaza igual que un
// descuento individual excesivo.
func AplicarAjustes(subtotal decimal.Decimal, ajustes []dto.AjusteRequest) (ajusteTotal, total decimal.Decimal, err error) {
	ajusteTotal = decimal.Zero
	for _, a := range ajustes {
		monto, err := CalcularAjuste(subtotal, a)
		if err != nil {
			return decimal.Zero, decimal.Zero, err
		}
		ajusteTotal = ajusteTotal.Add(monto)
	}

	total = subtotal.Add(ajusteTotal)
	if total.IsNegative() {
		return decimal.Zero, decimal.Zero, apperr.ErrDescuentoMayorQueSubtotal
	}
	return ajusteTotal, total, nil
}
