package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/GoDevDesk/dogosoft-kiosco/internal/apierror"
	"github.com/GoDevDesk/dogosoft-kiosco/internal/apperr"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError mapea los errores de negocio a su status HTTP. Cada condición
// tiene un status estable para que el cliente pueda distinguirla sin parsear
// mensajes: 409 conflicto de estado, 422 operación imposible, 400 el resto.
func respondError(c *gin.Context, err error) {
	var stockErr *apperr.StockInsuficienteError
	var sustErr *apperr.SustitucionInvalidaError
	var enUsoErr *apperr.EntidadEnUsoError

	switch {
	case errors.As(err, &stockErr),
		errors.As(err, &enUsoErr),
		errors.Is(err, apperr.ErrCodigoDuplicado),
		errors.Is(err, apperr.ErrListaProtegida),
		errors.Is(err, apperr.ErrTransicionInvalida):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	case errors.As(err, &sustErr),
		errors.Is(err, apperr.ErrSinPrecioEnLista),
		errors.Is(err, apperr.ErrPorcentajeInvalido),
		errors.Is(err, apperr.ErrMontoInvalido),
		errors.Is(err, apperr.ErrDescuentoMayorQueSubtotal),
		errors.Is(err, apperr.ErrPagoInsuficiente):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
