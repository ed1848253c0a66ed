package i18n_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-vcf/internal/i18n"
	"github.com/tartampluch/go-vcf/internal/vcard"
)

func TestDescribe_English(t *testing.T) {
	tr, err := i18n.New("en")
	require.NoError(t, err)

	assert.Equal(t, "The card is valid.", tr.Describe(nil))
	assert.Equal(t, "A property has an invalid name, parameter syntax, or value count.",
		tr.Describe(vcard.ErrInvalidProperty))
}

func TestDescribe_French(t *testing.T) {
	tr, err := i18n.New("fr")
	require.NoError(t, err)

	assert.Equal(t, "La carte est valide.", tr.Describe(nil))
	assert.Equal(t, "Une valeur de date-heure est mal formée ou mal placée.",
		tr.Describe(vcard.ErrInvalidDateTime))
}

func TestDescribe_WrappedErrorsResolve(t *testing.T) {
	tr, err := i18n.New("en")
	require.NoError(t, err)

	wrapped := errors.Join(vcard.ErrInvalidCard, errors.New("missing BEGIN"))
	assert.Equal(t, tr.Describe(vcard.ErrInvalidCard), tr.Describe(wrapped))
}

func TestDescribe_UnknownErrorFallsBack(t *testing.T) {
	tr, err := i18n.New("en")
	require.NoError(t, err)

	desc := tr.Describe(errors.New("something else"))
	assert.Equal(t, vcard.Describe(errors.New("something else")), desc)
	assert.NotEmpty(t, desc)
}

func TestNew_UnknownLanguageFallsBackToEnglish(t *testing.T) {
	tr, err := i18n.New("de")
	require.NoError(t, err)
	assert.Equal(t, "The card is valid.", tr.Describe(nil))
}

// TestLocaleIntegrity ensures every error kind has a translation in every
// embedded locale so no mixed-language output can appear.
func TestLocaleIntegrity(t *testing.T) {
	kinds := []error{
		vcard.ErrInvalidSource,
		vcard.ErrInvalidCard,
		vcard.ErrInvalidProperty,
		vcard.ErrInvalidDateTime,
		vcard.ErrExhausted,
		vcard.ErrWriteFailure,
	}

	for _, lang := range []string{"en", "fr"} {
		tr, err := i18n.New(lang)
		require.NoError(t, err)
		for _, k := range kinds {
			desc := tr.Describe(k)
			assert.NotEmpty(t, desc)
			assert.NotContains(t, desc, "err_", "raw key leaked for %v in %s", k, lang)
		}
	}
}
