package validate

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/bookverse/bookverse-api/internal/domain"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func TestStruct_Valid(t *testing.T) {
	require.NoError(t, Struct(sample{Email: "a@b.com", Password: "longenough"}))
}

func TestStruct_MissingField_UsesJSONName(t *testing.T) {
	err := Struct(sample{Password: "longenough"})
	require.Error(t, err)
	require.True(t, domain.Is(err, "missing_field"))

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, "email", de.Meta["field"])
}

func TestStruct_InvalidField(t *testing.T) {
	err := Struct(sample{Email: "not-an-email", Password: "longenough"})
	require.Error(t, err)
	require.True(t, domain.Is(err, "invalid_field"))

	var de *domain.Error
	require.ErrorAs(t, err, &de)
	require.Equal(t, "email", de.Meta["field"])
}

func TestStruct_ShortPassword(t *testing.T) {
	err := Struct(sample{Email: "a@b.com", Password: "short"})
	require.Error(t, err)
	require.True(t, domain.Is(err, "invalid_field"))
}
