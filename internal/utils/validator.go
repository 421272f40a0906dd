package utils

import (
	"reflect"
	"strings"

	apperrors "github.com/OpenCampus-2025/learning-service/internal/errors"
	"github.com/go-playground/validator/v10"
)

// Validator wraps go-playground struct validation behind a single instance
// shared by handlers and services.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	validate := validator.New()

	// Report the json field name in validation errors
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Domain rules referenced from request struct tags
	_ = validate.RegisterValidation("lesson_order", func(fl validator.FieldLevel) bool {
		return fl.Field().Int() >= 0
	})
	_ = validate.RegisterValidation("progress_range", func(fl validator.FieldLevel) bool {
		v := fl.Field().Int()
		return v >= 0 && v <= 100
	})
	_ = validate.RegisterValidation("quiz_questions", validQuizQuestions)

	return &Validator{validate: validate}
}

// validQuizQuestions checks a slice of question structs: every entry needs
// question text, a right answer and at least two variants. It reflects over
// the field names so request types stay in their own packages.
func validQuizQuestions(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < field.Len(); i++ {
		q := field.Index(i)
		if q.Kind() != reflect.Struct {
			return false
		}
		question := q.FieldByName("Question")
		right := q.FieldByName("RightAnswer")
		variants := q.FieldByName("Variants")
		if !question.IsValid() || question.String() == "" {
			return false
		}
		if !right.IsValid() || right.String() == "" {
			return false
		}
		if !variants.IsValid() || variants.Kind() != reflect.Slice || variants.Len() < 2 {
			return false
		}
	}
	return true
}

// Validate runs struct tag validation and translates failures into the
// shared ValidationErrors type.
func (v *Validator) Validate(s interface{}) error {
	if err := v.validate.Struct(s); err != nil {
		if translated := apperrors.ToValidationErrors(err); len(translated) > 0 {
			return translated
		}
		return err
	}
	return nil
}
