package validator

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/listings-marketplace/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("category", validateCategory)
	_ = validate.RegisterValidation("category_filter", validateCategoryFilter)
	_ = validate.RegisterValidation("notblank", validators.NotBlank)
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// validateCategory - значение из закрытого набора категорий
func validateCategory(fl validator.FieldLevel) bool {
	_, ok := domain.ParseCategory(fl.Field().String())
	return ok
}

// validateCategoryFilter - категория или "all"
func validateCategoryFilter(fl validator.FieldLevel) bool {
	v := fl.Field().String()
	if v == domain.CategoryFilterAll {
		return true
	}
	_, ok := domain.ParseCategory(v)
	return ok
}
