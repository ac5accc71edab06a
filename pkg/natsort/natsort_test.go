package natsort_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"localefinder/pkg/natsort"
)

func TestStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "numbers compare by value",
			in:   []string{"item10", "item2", "item1"},
			want: []string{"item1", "item2", "item10"},
		},
		{
			name: "case is ignored",
			in:   []string{"bye", "Hello", "apple"},
			want: []string{"apple", "bye", "Hello"},
		},
		{
			name: "case-only differences are still deterministic",
			in:   []string{"b", "B", "a"},
			want: []string{"a", "B", "b"},
		},
		{
			name: "empty input",
			in:   []string{},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			natsort.Strings(tt.in)
			assert.Equal(t, tt.want, tt.in)
		})
	}
}

func TestSorterUnknownLocale(t *testing.T) {
	t.Parallel()

	s := natsort.New("not a locale")
	keys := []string{"z", "a"}
	s.Strings(keys)
	assert.Equal(t, []string{"a", "z"}, keys)
	assert.Equal(t, 0, s.Compare("same", "same"))
}
