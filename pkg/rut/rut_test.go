package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpvergara/gestion-api/pkg/rut"
)

func TestComputeVerifier(t *testing.T) {
	cases := []struct {
		body string
		dv   byte
	}{
		{"12345678", '5'},
		{"11111111", '1'},
		{"76123456", '0'},
		{"5", '1'},  // 5*2=10, 11-(10%11)=1
		{"6", 'K'},  // 6*2=12, 11-(12%11)=10 → K
	}
	for _, c := range cases {
		dv, err := rut.ComputeVerifier(c.body)
		require.NoError(t, err, c.body)
		assert.Equal(t, string(c.dv), string(dv), "cuerpo %s", c.body)
	}
}

func TestValidate_Formatos(t *testing.T) {
	// El mismo RUT en todos los formatos aceptados.
	for _, s := range []string{"12.345.678-5", "12345678-5", "123456785"} {
		assert.NoError(t, rut.Validate(s), s)
	}
}

func TestValidate_VerificadorIncorrecto(t *testing.T) {
	assert.Error(t, rut.Validate("12.345.678-9"))
}

func TestValidate_Invalidos(t *testing.T) {
	assert.Error(t, rut.Validate(""))
	assert.Error(t, rut.Validate("1"))
	assert.Error(t, rut.Validate("abc-5"))
}

func TestValidate_VerificadorK(t *testing.T) {
	assert.NoError(t, rut.Validate("6-K"))
	assert.NoError(t, rut.Validate("6-k"), "k minúscula también se acepta")
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "12.345.678-5", rut.Format("123456785"))
	assert.Equal(t, "12.345.678-5", rut.Format("12345678-5"))
	assert.Equal(t, "1.111.111-4", rut.Format("1111111-4"), "siete dígitos agrupa bien")
	assert.Equal(t, "x", rut.Format("x"), "entrada inseparable se devuelve tal cual")
}
