// Copyright (c) 2026 Motolink. All rights reserved.
// Author: johnvilela

package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ptBRTranslations "github.com/go-playground/validator/v10/translations/pt_BR"

	"github.com/johnvilela/motolink/internal/platform/apperr"
)

// # Struct Validation

var (
	structValidator  *validator.Validate
	structTranslator ut.Translator
	structOnce       sync.Once
	structInitErr    error
)

// setup builds the shared validator with pt_BR messages and JSON field names.
func setup() {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})

	if err := validate.RegisterValidation("strongpassword", func(fl validator.FieldLevel) bool {
		return IsStrongPassword(fl.Field().String())
	}); err != nil {
		structInitErr = err
		return
	}

	locale := pt_BR.New()
	universal := ut.New(locale, locale)
	translator, _ := universal.GetTranslator("pt_BR")

	if err := ptBRTranslations.RegisterDefaultTranslations(validate, translator); err != nil {
		structInitErr = fmt.Errorf("validate: failed to register translations: %w", err)
		return
	}

	if err := validate.RegisterTranslation("strongpassword", translator,
		func(translator ut.Translator) error {
			return translator.Add("strongpassword", "{0} deve ter no mínimo 8 caracteres, com letra maiúscula, minúscula, número e caractere especial", true)
		},
		func(translator ut.Translator, fe validator.FieldError) string {
			message, _ := translator.T("strongpassword", fe.Field())
			return message
		},
	); err != nil {
		structInitErr = err
		return
	}

	structValidator = validate
	structTranslator = translator
}

// Struct runs the struct-tag rules of target and converts failures into a
// VALIDATION_ERROR whose details are keyed by JSON field name.
func Struct(target any) error {
	structOnce.Do(setup)
	if structInitErr != nil {
		return apperr.Internal(structInitErr)
	}

	err := structValidator.Struct(target)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ErrInvalidJSON
	}

	details := make([]apperr.FieldError, 0, len(validationErrors))
	for _, fieldError := range validationErrors {
		details = append(details, apperr.FieldError{
			Field:   fieldPath(fieldError),
			Message: fieldError.Translate(structTranslator),
		})
	}

	return apperr.ValidationError("Dados inválidos", details...)
}

// fieldPath drops the root struct name from the namespace ("input.address.cep" -> "address.cep").
func fieldPath(fieldError validator.FieldError) string {
	namespace := fieldError.Namespace()
	if _, rest, found := strings.Cut(namespace, "."); found {
		return rest
	}
	return fieldError.Field()
}
