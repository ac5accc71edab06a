package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"localefinder/internal/domain/scanner"
)

var defaultFunctions = []string{"__", "trans", "@lang"}

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{
			name:    "single and double quotes",
			content: `<?php echo __('user.profile.title'); echo trans("Welcome back");`,
			want:    []string{"user.profile.title", "Welcome back"},
		},
		{
			name:    "blade directive",
			content: `<h1>@lang('Dashboard')</h1>`,
			want:    []string{"Dashboard"},
		},
		{
			name:    "call with replacement arguments",
			content: `__('Hello :name', ['name' => $user->name])`,
			want:    []string{"Hello :name"},
		},
		{
			name:    "keys shorter than two characters are noise",
			content: `__('') __('a') __('ok')`,
			want:    []string{"ok"},
		},
		{
			name:    "escaped quotes are part of the key",
			content: `__('It\'s done')`,
			want:    []string{"It's done"},
		},
		{
			name:    "other quote type inside the key",
			content: `__("Say 'hi', please")`,
			want:    []string{"Say 'hi', please"},
		},
		{
			name:    "parentheses inside the key",
			content: `__('Save (draft)')`,
			want:    []string{"Save (draft)"},
		},
		{
			name:    "identifier suffix does not match",
			content: `some__('nope') my_trans('nope') $obj->trans('nope') $obj?->trans('nope')`,
			want:    []string{},
		},
		{
			name:    "string concatenation is a valid boundary",
			content: `$a = 'x'.__('joined');`,
			want:    []string{"joined"},
		},
		{
			name:    "start of content matches",
			content: `__('first')`,
			want:    []string{"first"},
		},
		{
			name:    "duplicates collapse",
			content: `__('dup') __("dup") trans('dup')`,
			want:    []string{"dup"},
		},
		{
			name:    "function names match case-insensitively",
			content: `TRANS('loud')`,
			want:    []string{"loud"},
		},
		{
			name:    "unquoted argument is ignored",
			content: `__($variable) trans(CONSTANT)`,
			want:    []string{},
		},
		{
			name:    "unterminated call is ignored",
			content: `__('never closed`,
			want:    []string{},
		},
		{
			name:    "nested call does not swallow the outer key",
			content: `__('outer ' . __('inner'))`,
			want:    []string{"inner"},
		},
		{
			name:    "multiline key",
			content: "__('line one\nline two')",
			want:    []string{"line one\nline two"},
		},
	}

	m := scanner.NewMatcher(defaultFunctions)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, m.Match(tt.content))
		})
	}
}

func TestMatchIsStableAndSorted(t *testing.T) {
	t.Parallel()

	content := `__('item10') __('item2') __('Banana') __('apple') __('item1')`
	m := scanner.NewMatcher(defaultFunctions)

	first := m.Match(content)
	second := m.Match(content)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"apple", "Banana", "item1", "item2", "item10"}, first)
}

func TestMatchAll(t *testing.T) {
	t.Parallel()

	m := scanner.NewMatcher([]string{" __ ", ""})
	got := m.MatchAll([]string{`__('b.key')`, `__('a.key') __('b.key')`})
	assert.Equal(t, []string{"a.key", "b.key"}, got)
}
