package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/devmatch/devmatch/internal/validate"
)

func TestStrongPassword(t *testing.T) {
	assert.True(t, validate.StrongPassword("Password@1"))
	assert.False(t, validate.StrongPassword("Pass@1"), "too short")
	assert.False(t, validate.StrongPassword("password@1"), "no uppercase")
	assert.False(t, validate.StrongPassword("PASSWORD@1"), "no lowercase")
	assert.False(t, validate.StrongPassword("Password@@"), "no digit")
	assert.False(t, validate.StrongPassword("Password11"), "no symbol")
}

func TestName(t *testing.T) {
	assert.True(t, validate.Name("Bob"))
	assert.True(t, validate.Name("  Bob  "), "trimmed before measuring")
	assert.False(t, validate.Name("Al"))
	assert.False(t, validate.Name(""))
}

func TestEnums(t *testing.T) {
	assert.True(t, validate.Gender("Female"))
	assert.False(t, validate.Gender("female"), "enum is case-sensitive")
	assert.False(t, validate.Gender("All"), "All is valid only for interestedIn")
	assert.True(t, validate.Interest("All"))
}

func TestProfileRejections(t *testing.T) {
	bad := "not a url"
	assert.Error(t, validate.Profile(validate.ProfileUpdate{PhotoURL: &bad}))

	age := 17
	assert.Error(t, validate.Profile(validate.ProfileUpdate{Age: &age}))

	six := []string{"a", "b", "c", "d", "e", "f"}
	assert.Error(t, validate.Profile(validate.ProfileUpdate{Skills: &six}))

	five := []string{"a", "b", "c", "d", "e"}
	assert.NoError(t, validate.Profile(validate.ProfileUpdate{Skills: &five}))
}
