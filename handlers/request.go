package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"athletics-backend/apperr"
	"athletics-backend/models"

	"github.com/go-playground/validator/v10"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// в сообщениях об ошибках используем имена полей из JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// NullableFloat проверяется по значению, null и отсутствие пропускает omitempty
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if n, ok := field.Interface().(models.NullableFloat); ok && n.Value != nil {
			return *n.Value
		}
		return nil
	}, models.NullableFloat{})
	return v
}

// decodeJSON читает тело запроса и проверяет validate-теги
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return apperr.Validation("Request body is required")
		}
		return apperr.Wrap(apperr.KindValidation, "Invalid request body: "+err.Error(), err)
	}
	return validateStruct(dst)
}

func validateStruct(v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Wrap(apperr.KindValidation, "Invalid request", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return apperr.Wrap(apperr.KindValidation, strings.Join(msgs, "; "), err)
}

func fieldMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must have at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must have at most %s characters", field, fe.Param())
	}
	return fmt.Sprintf("%s failed on %s", field, fe.Tag())
}

// pagination разбирает skip и limit
func pagination(r *http.Request) (skip, limit int, err error) {
	q := r.URL.Query()
	skip, limit = 0, defaultLimit

	if v := q.Get("skip"); v != "" {
		if skip, err = strconv.Atoi(v); err != nil || skip < 0 {
			return 0, 0, apperr.Validation("skip must be a non-negative integer")
		}
	}
	if v := q.Get("limit"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 1 || limit > maxLimit {
			return 0, 0, apperr.Validation(fmt.Sprintf("limit must be between 1 and %d", maxLimit))
		}
	}
	return skip, limit, nil
}

func queryDate(r *http.Request, name string) (*models.Date, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return nil, nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return nil, apperr.Validation(name + ": " + err.Error())
	}
	return &d, nil
}

func dateRange(r *http.Request) (from, to *models.Date, err error) {
	if from, err = queryDate(r, "from"); err != nil {
		return nil, nil, err
	}
	if to, err = queryDate(r, "to"); err != nil {
		return nil, nil, err
	}
	if from != nil && to != nil && to.Before(from.Time) {
		return nil, nil, apperr.Validation("to must not be before from")
	}
	return from, to, nil
}
