package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("padel_pro_99"))
	assert.NoError(t, ValidateUsername("abc"))

	assert.Error(t, ValidateUsername("ab"), "too short")
	assert.Error(t, ValidateUsername(strings.Repeat("a", 31)), "too long")
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername("dash-ed"))
	assert.Error(t, ValidateUsername(""))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("player@club.example.com"))
	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("Padel4Life!2024"))

	assert.Error(t, ValidatePassword("Sh0rt!pass"), "under 12 chars")
	assert.Error(t, ValidatePassword(strings.Repeat("Aa1!", 40)), "over 128 chars")
	assert.Error(t, ValidatePassword("alllowercase1!aa"), "no uppercase")
	assert.Error(t, ValidatePassword("ALLUPPERCASE1!AA"), "no lowercase")
	assert.Error(t, ValidatePassword("NoDigitsHere!!aa"), "no digit")
	assert.Error(t, ValidatePassword("NoSpecials1234aa"), "no special")
}

func TestStripMarkup(t *testing.T) {
	assert.Equal(t, "hello world", StripMarkup("<p>hello <b>world</b></p>"))
	assert.Equal(t, "", StripMarkup("<img src=x>"))
	assert.Equal(t, "a & b", StripMarkup("a &amp; b"))
	assert.Equal(t, "trimmed", StripMarkup("   trimmed   "))
}

func TestDescriptionLength(t *testing.T) {
	// Markup does not count toward the minimum.
	assert.Equal(t, 2, DescriptionLength("<p><b>ab</b></p>"))
	assert.Equal(t, 0, DescriptionLength("<div></div>"))
	// Rune count, not bytes.
	assert.Equal(t, 4, DescriptionLength("día!"))
}
