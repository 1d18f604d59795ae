package service

import (
	"testing"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/dto"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalcularAjuste_DescuentoPorcentual(t *testing.T) {
	subtotal := decimal.NewFromInt(1000)
	monto, err := CalcularAjuste(subtotal, dto.AjusteRequest{
		Modo: "descuento", Metodo: "porcentaje", Valor: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	assert.True(t, monto.Equal(decimal.NewFromInt(-100)), "monto = %s", monto)
}

func TestCalcularAjuste_RecargoFijo(t *testing.T) {
	subtotal := decimal.NewFromInt(500)
	monto, err := CalcularAjuste(subtotal, dto.AjusteRequest{
		Modo: "recargo", Metodo: "fijo", Valor: decimal.NewFromInt(75),
	})
	require.NoError(t, err)
	assert.True(t, monto.Equal(decimal.NewFromInt(75)))
}

func TestCalcularAjuste_PorcentajeFueraDeRango(t *testing.T) {
	subtotal := decimal.NewFromInt(1000)

	_, err := CalcularAjuste(subtotal, dto.AjusteRequest{
		Modo: "descuento", Metodo: "porcentaje", Valor: decimal.NewFromInt(150),
	})
	assert.ErrorIs(t, err, apperr.ErrPorcentajeInvalido)

	_, err = CalcularAjuste(subtotal, dto.AjusteRequest{
		Modo: "recargo", Metodo: "porcentaje", Valor: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, apperr.ErrPorcentajeInvalido)
}

// Un monto fijo negativo es su propia condición: el signo lo pone el modo
// (descuento/recargo), nunca el valor.
func TestCalcularAjuste_MontoFijoNegativo(t *testing.T) {
	subtotal := decimal.NewFromInt(1000)
	_, err := CalcularAjuste(subtotal, dto.AjusteRequest{
		Modo: "descuento", Metodo: "fijo", Valor: decimal.NewFromInt(-50),
	})
	assert.ErrorIs(t, err, apperr.ErrMontoInvalido)
	assert.NotErrorIs(t, err, apperr.ErrPorcentajeInvalido)
}

// El porcentaje se valida antes que la relación con el subtotal: 150% sobre
// un subtotal chico es siempre ErrPorcentajeInvalido, nunca
// ErrDescuentoMayorQueSubtotal.
func TestCalcularAjuste_PorcentajeInvalidoTienePrecedencia(t *testing.T) {
	subtotal := decimal.NewFromInt(10)
	_, err := CalcularAjuste(subtotal, dto.AjusteRequest{
		Modo: "descuento", Metodo: "porcentaje", Valor: decimal.NewFromInt(150),
	})
	assert.ErrorIs(t, err, apperr.ErrPorcentajeInvalido)
}

func TestCalcularAjuste_DescuentoMayorQueSubtotal(t *testing.T) {
	subtotal := decimal.NewFromInt(100)
	_, err := CalcularAjuste(subtotal, dto.AjusteRequest{
		Modo: "descuento", Metodo: "fijo", Valor: decimal.NewFromInt(150),
	})
	assert.ErrorIs(t, err, apperr.ErrDescuentoMayorQueSubtotal)
}

func TestAplicarAjustes_Acumulacion(t *testing.T) {
	// Cada ajuste se calcula contra el subtotal original, no el total corriente:
	// 1000 - 10% (100) + recargo fijo 50 - descuento fijo 200 = 750.
	subtotal := decimal.NewFromInt(1000)
	ajustes := []dto.AjusteRequest{
		{Modo: "descuento", Metodo: "porcentaje", Valor: decimal.NewFromInt(10)},
		{Modo: "recargo", Metodo: "fijo", Valor: decimal.NewFromInt(50)},
		{Modo: "descuento", Metodo: "fijo", Valor: decimal.NewFromInt(200)},
	}

	ajusteTotal, total, err := AplicarAjustes(subtotal, ajustes)
	require.NoError(t, err)
	assert.True(t, ajusteTotal.Equal(decimal.NewFromInt(-250)), "ajusteTotal = %s", ajusteTotal)
	assert.True(t, total.Equal(decimal.NewFromInt(750)), "total = %s", total)
}

func TestAplicarAjustes_AcumulacionNegativaRechazada(t *testing.T) {
	// Dos descuentos individualmente válidos que juntos superan el subtotal.
	subtotal := decimal.NewFromInt(1000)
	ajustes := []dto.AjusteRequest{
		{Modo: "descuento", Metodo: "porcentaje", Valor: decimal.NewFromInt(60)},
		{Modo: "descuento", Metodo: "fijo", Valor: decimal.NewFromInt(600)},
	}

	_, _, err := AplicarAjustes(subtotal, ajustes)
	assert.ErrorIs(t, err, apperr.ErrDescuentoMayorQueSubtotal)
}

func TestAplicarAjustes_SinAjustes(t *testing.T) {
	subtotal := decimal.NewFromInt(300)
	ajusteTotal, total, err := AplicarAjustes(subtotal, nil)
	require.NoError(t, err)
	assert.True(t, ajusteTotal.IsZero())
	assert.True(t, total.Equal(subtotal))
}
