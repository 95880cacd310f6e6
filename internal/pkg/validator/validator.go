// Package validator validates structs by the "validate" tags and formats errors as readable messages.
package validator

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslation "github.com/go-playground/validator/v10/translations/en"

	"github.com/typo3-migrate/mask2cb/internal/pkg/utils/errors"
)

const nestedFieldName = "__nested__"

type Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

type Rule struct {
	Tag          string
	Func         validator.FuncCtx
	ErrorMessage string
}

func New(rules ...Rule) *Validator {
	v := &Validator{validate: validator.New()}

	// Register default EN translator
	enLocale := en.New()
	translator, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		panic(errors.New("en translator was not found"))
	}
	if err := enTranslation.RegisterDefaultTranslations(v.validate, translator); err != nil {
		panic(errors.Errorf("translator was not registered: %w", err))
	}
	v.translator = translator

	// Register custom rules
	for _, rule := range rules {
		v.registerRule(rule)
	}

	// Use the configKey, mapstructure or JSON name in error messages.
	// Anonymous fields are named "__nested__", so they can be removed from the error namespace.
	v.validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if fld.Anonymous {
			return nestedFieldName
		}
		for _, tag := range []string{"configKey", "mapstructure", "json", "yaml"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return fld.Name
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// Validate value, errors are returned as a multi error.
func (v *Validator) Validate(ctx context.Context, value any) error {
	return v.ValidateCtx(ctx, value, "dive", "")
}

// ValidateCtx validates the value. Structs are validated by their tags, other values by the tag argument, namespace is used as a prefix of the field paths.
func (v *Validator) ValidateCtx(ctx context.Context, value any, tag, namespace string) error {
	var err error
	if isStruct(value) {
		err = v.validate.StructCtx(ctx, value)
	} else {
		err = v.validate.VarCtx(ctx, value, tag)
	}
	if err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return v.processErrors(validationErrs, namespace)
		}
		return err
	}
	return nil
}

func isStruct(value any) bool {
	t := reflect.TypeOf(value)
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t != nil && t.Kind() == reflect.Struct
}

func (v *Validator) registerRule(rule Rule) {
	if err := v.validate.RegisterValidationCtx(rule.Tag, rule.Func); err != nil {
		panic(err)
	}
	if rule.ErrorMessage == "" {
		return
	}
	registerFn := func(ut ut.Translator) error {
		return ut.Add(rule.Tag, rule.ErrorMessage, true)
	}
	translationFn := func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T(fe.Tag(), fe.Field())
		return t
	}
	if err := v.validate.RegisterTranslation(rule.Tag, v.translator, registerFn, translationFn); err != nil {
		panic(err)
	}
}

func (v *Validator) processErrors(errs validator.ValidationErrors, namespace string) error {
	out := errors.NewMultiError()
	for _, e := range errs {
		path := fieldPath(e.Namespace())
		if namespace != "" {
			if path == "" {
				path = namespace
			} else {
				path = namespace + "." + path
			}
		}

		msg := e.Translate(v.translator)
		if path != "" {
			msg = strings.Replace(msg, e.Field(), fmt.Sprintf(`"%s"`, path), 1)
		}
		out.Append(errors.New(msg))
	}
	return out.ErrorOrNil()
}

// fieldPath removes the root struct name and the anonymous parts from the namespace.
func fieldPath(namespace string) string {
	namespace = strings.ReplaceAll(namespace, nestedFieldName+".", "")
	parts := strings.SplitN(namespace, ".", 2)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}
