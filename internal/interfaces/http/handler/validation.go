package handler

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/frameshop/backend/internal/domain/supply"
)

var registerOnce sync.Once

// RegisterValidations installs custom binding rules on gin's validator
// engine. Safe to call more than once.
func RegisterValidations() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			_ = v.RegisterValidation("paymentterm", validatePaymentTerm)
		}
	})
}

// validatePaymentTerm accepts any known payment-term tier. Empty values are
// handled by omitempty so the default tier can apply downstream.
func validatePaymentTerm(fl validator.FieldLevel) bool {
	return supply.ValidPaymentTerm(supply.PaymentTerm(fl.Field().String()))
}
