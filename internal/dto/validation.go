package dto

import (
	"fmt"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/bizbooks/backoffice_ledger/internal/core/domain"
)

// RegisterCustomValidators extends gin's validator engine with the ledger's
// custom rules: decimal.Decimal fields become readable by numeric binding tags
// like gt=0, and the txntype tag checks the closed transaction type set. Call
// once at startup before serving requests.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine type %T", binding.Validator.Engine())
	}
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	if err := v.RegisterValidation("txntype", validateTransactionType); err != nil {
		return fmt.Errorf("failed to register txntype validation: %w", err)
	}
	return nil
}

func validateTransactionType(fl validator.FieldLevel) bool {
	_, err := domain.ParseTransactionType(fl.Field().String())
	return err == nil
}
