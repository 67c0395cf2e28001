package controllers

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/iota-uz/boxoffice/pkg/apiclient"
	"github.com/iota-uz/boxoffice/pkg/currency"
	"github.com/iota-uz/boxoffice/pkg/inlineedit"
	"github.com/iota-uz/boxoffice/pkg/intl"
)

// saveMessage explains a failed inline save: the backend's validation
// message for the field first, then local validation, then a generic text.
func saveMessage(ctx context.Context, label func(field string) string) inlineedit.MessageFunc {
	return func(field string, err error) string {
		if se, ok := apiclient.AsStatus(err); ok {
			if msg := se.FieldError(field); msg != "" {
				return msg
			}
			if errors.Is(err, apiclient.ErrValidation) && se.Message != "" {
				return se.Message
			}
		}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return intl.TData(ctx, "ValidationErrors."+verrs[0].Tag(), "{{.Field}} is invalid",
				map[string]any{"Field": label(field)})
		}
		if errors.Is(err, currency.ErrEmpty) {
			return intl.TData(ctx, "ValidationErrors.required", "{{.Field}} is required",
				map[string]any{"Field": label(field)})
		}
		return intl.T(ctx, "Errors.SaveFailed", "Could not save the change.")
	}
}
