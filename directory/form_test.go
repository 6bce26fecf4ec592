package directory

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"relman/api"
)

func TestParseForm(t *testing.T) {
	p, err := PersonForm{Name: " Ana ", Age: "30", City: "", Interests: ""}.Parse()
	require.NoError(t, err)
	require.Equal(t, api.NewPerson{Name: "Ana", Age: 30, City: "", Interests: []string{}}, p)
}

func TestParseFormInterests(t *testing.T) {
	p, err := PersonForm{Name: "Bob", Age: "32", City: "Rio de Janeiro", Interests: "esportes, tecnologia ,, cerveja"}.Parse()
	require.NoError(t, err)
	require.Equal(t, []string{"esportes", "tecnologia", "cerveja"}, p.Interests)
	require.Equal(t, "Rio de Janeiro", p.City)
}

func TestParseFormRejects(t *testing.T) {
	tests := []struct {
		name  string
		form  PersonForm
		field string
	}{
		{"missing name", PersonForm{Name: "  ", Age: "20"}, "nome"},
		{"age not a number", PersonForm{Name: "Ana", Age: "thirty"}, "idade"},
		{"empty age", PersonForm{Name: "Ana"}, "idade"},
		{"negative age", PersonForm{Name: "Ana", Age: "-1"}, "idade"},
		{"age too large", PersonForm{Name: "Ana", Age: "151"}, "idade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.form.Parse()
			require.ErrorIs(t, err, ErrInvalidPerson)

			var fe *FieldError
			require.True(t, errors.As(err, &fe))
			require.Equal(t, tt.field, fe.Field)
			require.NotEmpty(t, fe.Message)
		})
	}
}

func TestSplitInterests(t *testing.T) {
	require.Equal(t, []string{}, SplitInterests(""))
	require.Equal(t, []string{}, SplitInterests(" , ,"))
	require.Equal(t, []string{"yoga", "natureza"}, SplitInterests("yoga,natureza"))
}
