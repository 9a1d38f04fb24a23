package valicomb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostybee/valicomb"
)

func failingMessages(t *testing.T, v *valicomb.Validator, field string) []string {
	t.Helper()
	ok, err := v.Validate()
	require.NoError(t, err)
	require.False(t, ok)
	return v.FieldErrors(field)
}

func TestMessages_Labels(t *testing.T) {
	t.Parallel()

	t.Run("auto label from the field name", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{})
		v.Rule("required", []string{"first_name"})

		assert.Equal(t, []string{"First Name is required"}, failingMessages(t, v, "first_name"))
	})

	t.Run("explicit label wins", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{})
		v.Label("email", "E-mail address")
		v.Rule("required", []string{"email"})

		assert.Equal(t, []string{"E-mail address is required"}, failingMessages(t, v, "email"))
	})

	t.Run("label via the entry builder", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{})
		v.Rule("required", []string{"dob"}).Label("Date of birth")

		assert.Equal(t, []string{"Date of birth is required"}, failingMessages(t, v, "dob"))
	})

	t.Run("bulk labels", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{})
		v.Labels(map[string]string{"a": "Alpha", "b": "Beta"})
		v.Rule("required", []string{"a", "b"})

		_, err := v.Validate()
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha is required"}, v.FieldErrors("a"))
		assert.Equal(t, []string{"Beta is required"}, v.FieldErrors("b"))
	})
}

func TestMessages_FieldNPlaceholder(t *testing.T) {
	t.Parallel()

	t.Run("renders the label of the referenced field", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"password": "a", "confirm": "b"})
		v.Labels(map[string]string{"confirm": "Confirmation", "password": "Password"})
		v.Rule("equals", []string{"confirm"}, "password")

		assert.Equal(t,
			[]string{"Confirmation must be the same as Password"},
			failingMessages(t, v, "confirm"))
	})

	t.Run("falls back to the literal parameter", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"password": "a", "confirm": "b"})
		v.Rule("equals", []string{"confirm"}, "password")

		assert.Equal(t,
			[]string{"Confirm must be the same as password"},
			failingMessages(t, v, "confirm"))
	})
}

func TestMessages_ValuePlaceholder(t *testing.T) {
	t.Parallel()

	v := valicomb.New(map[string]any{"color": "mauve"})
	v.Rule("in", []string{"color"}, []any{"red", "green"}).
		Message("{field} got {value}, expected one of %s")

	assert.Equal(t,
		[]string{"Color got mauve, expected one of ['red', 'green']"},
		failingMessages(t, v, "color"))
}

func TestMessages_ParamFormatting(t *testing.T) {
	t.Parallel()

	t.Run("parameters fill printf specifiers in order", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"code": "abcdefgh"})
		v.Rule("lengthBetween", []string{"code"}, 2, 4)

		assert.Equal(t,
			[]string{"Code must be between 2 and 4 characters"},
			failingMessages(t, v, "code"))
	})

	t.Run("missing parameters pad with empty strings", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"n": 1})
		v.Rule("max", []string{"n"}, 0).Message("%s then %s")

		assert.Equal(t, []string{"0 then "}, failingMessages(t, v, "n"))
	})

	t.Run("templates without specifiers pass through verbatim", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"n": 1})
		v.Rule("max", []string{"n"}, 0).Message("{field} is 100% wrong")

		assert.Equal(t, []string{"N is 100% wrong"}, failingMessages(t, v, "n"))
	})
}

func TestMessages_TemplatePrecedence(t *testing.T) {
	t.Parallel()

	t.Run("entry message beats registered and catalog messages", func(t *testing.T) {
		t.Parallel()

		valicomb.Register("messageTestPrecedence", func(field string, value any, params []any, data map[string]any) bool {
			return false
		}, "{field} from registration")

		v := valicomb.New(map[string]any{"x": 1})
		v.Rule("messageTestPrecedence", []string{"x"}).Message("{field} from the entry")

		assert.Equal(t, []string{"X from the entry"}, failingMessages(t, v, "x"))
	})

	t.Run("registered message beats the fallback", func(t *testing.T) {
		t.Parallel()

		valicomb.Register("messageTestRegistered", func(field string, value any, params []any, data map[string]any) bool {
			return false
		}, "{field} from registration")

		v := valicomb.New(map[string]any{"x": 1})
		v.Rule("messageTestRegistered", []string{"x"})

		assert.Equal(t, []string{"X from registration"}, failingMessages(t, v, "x"))
	})

	t.Run("unknown template falls back to a generic message", func(t *testing.T) {
		t.Parallel()

		valicomb.Register("messageTestBare", func(field string, value any, params []any, data map[string]any) bool {
			return false
		})

		v := valicomb.New(map[string]any{"x": 1})
		v.Rule("messageTestBare", []string{"x"})

		assert.Equal(t, []string{"X is invalid"}, failingMessages(t, v, "x"))
	})
}

func TestMessages_WithoutLabelPrefix(t *testing.T) {
	t.Parallel()

	v := valicomb.New(map[string]any{}, valicomb.WithoutLabelPrefix())
	v.Rule("required", []string{"email"})

	assert.Equal(t, []string{"is required"}, failingMessages(t, v, "email"))
}

func TestMessages_LanguageCatalogs(t *testing.T) {
	t.Parallel()

	t.Run("german catalog", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{}, valicomb.WithLanguage("de"))
		v.Rule("required", []string{"email"})

		assert.Equal(t, []string{"Email ist erforderlich"}, failingMessages(t, v, "email"))
	})

	t.Run("unknown language falls back to english", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{}, valicomb.WithLanguage("tlh"))
		v.Rule("required", []string{"email"})

		assert.Equal(t, []string{"Email is required"}, failingMessages(t, v, "email"))
	})

	t.Run("custom catalog overrides templates", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{}, valicomb.WithCatalog(map[string]string{
			"required": "{field} be missin', matey",
		}))
		v.Rule("required", []string{"email"})

		assert.Equal(t, []string{"Email be missin', matey"}, failingMessages(t, v, "email"))
	})
}
