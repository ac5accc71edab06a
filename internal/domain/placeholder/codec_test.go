package placeholder_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localefinder/internal/domain"
	"localefinder/internal/domain/placeholder"
)

func TestMaskHidesVariables(t *testing.T) {
	t.Parallel()

	masked, table := placeholder.Mask("Hello :name, you have :count items")

	assert.NotContains(t, masked, ":name")
	assert.NotContains(t, masked, ":count")
	assert.True(t, strings.HasPrefix(masked, "Hello {{"))
	assert.True(t, strings.HasSuffix(masked, " items"))
	assert.Len(t, table, 2)
}

func TestMaskWithoutVariablesIsNoop(t *testing.T) {
	t.Parallel()

	masked, table := placeholder.Mask("Plain text: nothing here")
	assert.Equal(t, "Plain text: nothing here", masked)
	assert.Empty(t, table)
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"No markers at all",
		"Hello :name, you have :count items",
		":leading and trailing:",
		"Colon : alone",
		"Repeated :name and :name again",
		"Time is 12:30",
		"Unicode :naam in één zin",
		"Template {{ user }} and :var",
		"Broken {{ brace and :var",
		"Stray }} close and :var",
		"{:x}",
		"Module blog::title",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			t.Parallel()
			masked, table := placeholder.Mask(in)
			out, err := placeholder.Unmask(masked, table)
			require.NoError(t, err)
			assert.Equal(t, in, out)
		})
	}
}

func TestUnmaskAfterTranslation(t *testing.T) {
	t.Parallel()

	masked, table := placeholder.Mask("Hello :name")
	// A translator may move the marker and pad it with spaces.
	translated := strings.Replace(masked, "Hello ", "Hallo ", 1)
	translated = strings.Replace(translated, "{{", "{{ ", 1)

	out, err := placeholder.Unmask(translated, table)
	require.NoError(t, err)
	assert.Equal(t, "Hallo :name", out)
}

func TestUnmaskFailsLoudly(t *testing.T) {
	t.Parallel()

	t.Run("table from another invocation", func(t *testing.T) {
		t.Parallel()
		masked, _ := placeholder.Mask("Hello :name")
		_, other := placeholder.Mask("Bye :user")

		_, err := placeholder.Unmask(masked, other)
		require.ErrorIs(t, err, domain.ErrUnknownPlaceholder)
	})

	t.Run("empty table", func(t *testing.T) {
		t.Parallel()
		masked, _ := placeholder.Mask("Hello :name")

		_, err := placeholder.Unmask(masked, placeholder.Table{})
		require.ErrorIs(t, err, domain.ErrUnknownPlaceholder)
	})

	t.Run("marker dropped by translator", func(t *testing.T) {
		t.Parallel()
		_, table := placeholder.Mask("Hello :name")

		_, err := placeholder.Unmask("Hallo", table)
		require.ErrorIs(t, err, domain.ErrUnknownPlaceholder)
	})
}
