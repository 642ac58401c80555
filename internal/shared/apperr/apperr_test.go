package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want int
	}{
		{"validation", Validation(CodeValidation, "bad"), http.StatusBadRequest},
		{"referential", Referential(CodeReferential, "missing ref"), http.StatusBadRequest},
		{"not found", NotFound(CodeNotFound, "gone"), http.StatusNotFound},
		{"conflict", Conflict(CodeConflict, "taken"), http.StatusConflict},
		{"internal", Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestError_UnwrapKeepsSentinel(t *testing.T) {
	sentinel := errors.New("place not found")
	err := fmt.Errorf("load place: %w", New(KindNotFound, "PLC001", "Place not found", sentinel))

	assert.ErrorIs(t, err, sentinel)

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "PLC001", appErr.Code)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestKindOf_PlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("driver exploded")))
	assert.Equal(t, "internal", KindOf(nil).String())
}

func TestFromValidation(t *testing.T) {
	assert.NoError(t, FromValidation("X", nil))

	verr := validation.Errors{"title": errors.New("cannot be blank")}
	err := FromValidation("CAT002", verr)

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, KindValidation, appErr.Kind)
	assert.Equal(t, "CAT002", appErr.Code)
	assert.Contains(t, appErr.Message, "title: cannot be blank")
}

func TestError_MessageNotRepeated(t *testing.T) {
	verr := validation.Errors{"title": errors.New("cannot be blank")}

	err := FromValidation("CAT002", verr)

	assert.Equal(t, "title: cannot be blank.", err.Error())
	var inner validation.Errors
	assert.ErrorAs(t, err, &inner)

	wrapped := New(KindInternal, CodeInternal, "load failed", errors.New("conn reset"))
	assert.Equal(t, "load failed: conn reset", wrapped.Error())
}
