package api

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

// projectionRequest mirrors the OpenAPI schema for POST /api/v1/gtci/projection.
type projectionRequest struct {
	Improvements map[string]float64 `json:"improvements" validate:"omitempty,dive,keys,required,endkeys,gte=-100,lte=100"`
}

// salaryRequest mirrors the OpenAPI schema for POST /api/v1/salary.
type salaryRequest struct {
	Province        string  `json:"province" validate:"required"`
	Sector          string  `json:"sector" validate:"required"`
	ExperienceYears float64 `json:"experience_years" validate:"gte=0,lte=60"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body of at most maxBody bytes into dst and validates it.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, op string, dst any) error {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	defer func() { _ = body.Close() }()

	if err := render.DecodeJSON(body, dst); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return WrapKind(op, ErrBodyTooBig, err)
		}
		return WrapKind(op, ErrBadRequest, fmt.Errorf("invalid JSON body: %w", err))
	}
	if err := s.validate.Struct(dst); err != nil {
		return WrapKind(op, ErrBadRequest, validationMessage(err))
	}
	return nil
}

// validationMessage flattens validator errors into one readable error.
func validationMessage(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	parts := make([]string, 0, len(ve))
	for _, fe := range ve {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "gte":
			parts = append(parts, fe.Field()+" must be at least "+fe.Param())
		case "lte":
			parts = append(parts, fe.Field()+" must be at most "+fe.Param())
		default:
			parts = append(parts, fe.Field()+" failed "+fe.Tag())
		}
	}
	return errors.New(strings.Join(parts, "; "))
}
