package fields

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iota-uz/boxoffice/pkg/inlineedit"
)

var ErrUnknownOp = errors.New("fields: unknown operation")

// FormDTO is what the rendered controls post.
type FormDTO struct {
	Op    string `form:"op"`
	Value string `form:"value"`
}

// Apply drives f with one posted operation. Save failures leave f in the
// error state and are returned as well.
func Apply(ctx context.Context, f *inlineedit.Field, dto *FormDTO, save inlineedit.SaveFunc) error {
	switch dto.Op {
	case OpBegin:
		return f.Begin()
	case OpChange:
		return f.Change(dto.Value)
	case OpSubmit:
		if err := f.Change(dto.Value); err != nil {
			return err
		}
		return f.Submit(ctx, save)
	case OpConfirm:
		return f.Confirm(ctx, save)
	case OpCancel:
		f.Cancel()
		return nil
	default:
		return errors.Wrapf(ErrUnknownOp, "%q", dto.Op)
	}
}
