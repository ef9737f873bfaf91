package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	v := Violations{}
	Required("name", "Pharmacie A", v)
	assert.True(t, v.Empty())

	Required("email", "   ", v)
	assert.False(t, v.Empty())
	assert.Equal(t, "champ obligatoire", v["email"])
}

func TestEmail(t *testing.T) {
	valid := []string{"a@x.com", "jean.dupont@pharma.fr", "x+tag@y.co"}
	for _, e := range valid {
		v := Violations{}
		Email("email", e, v)
		assert.True(t, v.Empty(), e)
	}

	invalid := []string{"a@x", "not-an-email", "a b@x.com", "@x.com"}
	for _, e := range invalid {
		v := Violations{}
		Email("email", e, v)
		assert.False(t, v.Empty(), e)
	}

	// Empty value is Required's job, not Email's
	v := Violations{}
	Email("email", "", v)
	assert.True(t, v.Empty())
}

func TestPhone(t *testing.T) {
	v := Violations{}
	Phone("phone", "+21612345678", v)
	assert.True(t, v.Empty())

	v = Violations{}
	Phone("phone", "12345", v)
	assert.False(t, v.Empty())
}

func TestPassword(t *testing.T) {
	v := Violations{}
	Password("password", "secret1", v)
	assert.True(t, v.Empty())

	v = Violations{}
	Password("password", "abc", v)
	assert.Equal(t, "au moins 6 caractères", v["password"])
}

func TestPositiveInt(t *testing.T) {
	v := Violations{}
	PositiveInt("quantity", 50, v)
	assert.True(t, v.Empty())

	v = Violations{}
	PositiveInt("quantity", 0, v)
	assert.False(t, v.Empty())
}

func TestFirst(t *testing.T) {
	v := Violations{}
	assert.Equal(t, "", v.First())

	Required("name", "", v)
	assert.Equal(t, "name: champ obligatoire", v.First())
}

func TestFirstIsDeterministicAcrossFields(t *testing.T) {
	// Several failing fields must always report the same one.
	for i := 0; i < 20; i++ {
		v := Violations{}
		Required("phone", "", v)
		Required("name", "", v)
		Required("email", "", v)
		assert.Equal(t, "email: champ obligatoire", v.First())
	}
}
