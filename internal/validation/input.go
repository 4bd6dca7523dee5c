package validation

import (
	"fmt"
	"path"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/h2non/filetype"

	"github.com/ignatzorin/swipeshare-backend/internal/pkg/apperror"
)

// Константы валидации
const (
	MaxProofPathLength   = 512
	MaxCommentLength     = 1000
	MaxResolutionLength  = 2000
	MaxDescriptionLength = 2000
	DefaultPageLimit     = 20
	MaxPageLimit         = 100
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// В сообщениях используем имена полей из json-тегов.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct проверяет структуру по тегам validate и возвращает ошибку VALIDATION_ERROR.
func Struct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return apperror.Wrap(err, apperror.ErrCodeValidation, "некорректные входные данные")
	}

	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		parts = append(parts, describe(fe))
	}
	return apperror.Wrap(err, apperror.ErrCodeValidation, strings.Join(parts, "; "))
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: обязательное поле", fe.Field())
	case "min", "gte":
		return fmt.Sprintf("%s: значение меньше допустимого (%s)", fe.Field(), fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s: значение больше допустимого (%s)", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: допустимые значения %s", fe.Field(), fe.Param())
	}
	return fmt.Sprintf("%s: не прошло проверку %s", fe.Field(), fe.Tag())
}

// ValidateLength проверяет длину строки.
func ValidateLength(fieldName, value string, min, max int) error {
	length := utf8.RuneCountInString(value)
	if min > 0 && length < min {
		return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("%s должен быть не менее %d символов", fieldName, min))
	}
	if max > 0 && length > max {
		return apperror.New(apperror.ErrCodeValidation, fmt.Sprintf("%s должен быть не более %d символов", fieldName, max))
	}
	return nil
}

// ProofPath проверяет ссылку на фото подтверждения заказа: относительный путь в
// хранилище с расширением изображения. Пустой путь допустим.
func ProofPath(p string) error {
	p = strings.TrimSpace(p)
	if p == "" {
		return nil
	}
	if err := ValidateLength("proof_path", p, 0, MaxProofPathLength); err != nil {
		return err
	}
	if strings.HasPrefix(p, "/") || strings.Contains(p, "..") || strings.Contains(p, "://") {
		return apperror.New(apperror.ErrCodeValidation, "proof_path должен быть относительным путём в хранилище")
	}

	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	if ext == "jpeg" {
		ext = "jpg"
	}
	kind := filetype.GetType(ext)
	if kind == filetype.Unknown || kind.MIME.Type != "image" {
		return apperror.New(apperror.ErrCodeValidation, "proof_path должен указывать на изображение")
	}
	return nil
}

// Page нормализует параметры пагинации.
func Page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
