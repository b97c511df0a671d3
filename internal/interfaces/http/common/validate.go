package common

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Stuart1162/fizzyjuice/internal/public/domain"
)

var validate = newValidator()

// newValidator は語彙タグ (strength, jobrole, contract, shift, applydisplay) を登録する。
func newValidator() *validator.Validate {
	v := validator.New()
	register := func(tag string, vocabulary []string) {
		_ = v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			value := strings.TrimSpace(fl.Field().String())
			if value == "" {
				return true
			}
			for _, item := range vocabulary {
				if strings.EqualFold(item, value) {
					return true
				}
			}
			return false
		})
	}
	register("strength", domain.CompanyStrengths)
	register("jobrole", domain.JobRoles)
	register("contract", append(append([]string{}, domain.ContractTypes...), domain.LegacyContractTypes...))
	register("shift", domain.Shifts)
	register("applydisplay", domain.ApplyDisplays)
	return v
}

// Validate runs struct tags and converts failures into a domain validation error.
func Validate(payload any) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		field := fe.Field()
		switch fe.Tag() {
		case "required":
			return domain.Invalidf("%s is required", field)
		case "max":
			return domain.Invalidf("%s must have at most %s entries or characters", field, fe.Param())
		case "email":
			return domain.Invalidf("invalid email: %v", fe.Value())
		case "url":
			return domain.Invalidf("invalid url: %v", fe.Value())
		default:
			return domain.Invalidf("invalid %s: %v", field, fe.Value())
		}
	}
	return domain.Invalidf("invalid request: %v", err)
}

// DecodeJSON decodes a size-limited body, rejects unknown fields, then validates.
func DecodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, MaxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.Invalidf("request body is empty")
		}
		return domain.Invalidf("invalid JSON: %s", err.Error())
	}
	if dec.More() {
		return domain.Invalidf("request body must contain a single JSON object")
	}
	if err := Validate(dst); err != nil {
		return fmt.Errorf("validate request: %w", err)
	}
	return nil
}
