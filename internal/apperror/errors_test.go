package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{New(KindAuthentication, "x"), http.StatusUnauthorized},
		{New(KindAuthorization, "x"), http.StatusForbidden},
		{Validation("falta edad"), http.StatusBadRequest},
		{New(KindIntegrity, "código inválido"), http.StatusBadRequest},
		{New(KindTooLarge, "x"), http.StatusRequestEntityTooLarge},
		{New(KindConflict, "x"), http.StatusConflict},
		{New(KindNotFound, "x"), http.StatusNotFound},
		{Store("x", errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Status(tc.err), tc.err.Error())
	}
}

func TestKindOf_ThroughWrapping(t *testing.T) {
	base := Validation("el archivo está vacío")
	wrapped := fmt.Errorf("import: %w", base)

	assert.Equal(t, KindValidation, KindOf(wrapped))
	assert.Equal(t, "el archivo está vacío", MessageOf(wrapped, "fallback"))
	assert.Equal(t, "fallback", MessageOf(errors.New("raw"), "fallback"))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("duplicate")
	err := Wrap(KindConflict, "ya existe", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "conflict")
	assert.Contains(t, err.Error(), "duplicate")
}
