package valicomb_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostybee/valicomb"
)

func TestValidator_BasicPassAndFail(t *testing.T) {
	t.Parallel()

	t.Run("valid data passes with no errors", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{
			"email": "bob@example.com",
			"age":   25,
		})
		v.Rule("required", []string{"email", "age"})
		v.Rule("email", []string{"email"})
		v.Rule("min", []string{"age"}, 18)

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, v.Errors())
	})

	t.Run("invalid data fails with a formatted message", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"email": "not-an-email"})
		v.Rule("email", []string{"email"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"Email is not a valid email address"}, v.FieldErrors("email"))
	})

	t.Run("missing required field reports its label", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{})
		v.Rule("required", []string{"name"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"Name is required"}, v.FieldErrors("name"))
	})

	t.Run("one entry covers several fields in order", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"first": "", "last": ""})
		v.Rule("required", []string{"first", "last"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, v.Errors(), 2)
	})
}

func TestValidator_ConfigurationErrors(t *testing.T) {
	t.Parallel()

	t.Run("unknown rule name", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"x": 1})
		v.Rule("definitelyNotARule", []string{"x"})

		ok, err := v.Validate()
		assert.False(t, ok)
		require.ErrorIs(t, err, valicomb.ErrUnknownRule)
	})

	t.Run("rule without fields", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"x": 1})
		v.Rule("required", nil)

		_, err := v.Validate()
		require.ErrorIs(t, err, valicomb.ErrNoFields)
	})

	t.Run("missing rule parameter", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"age": 30})
		v.Rule("min", []string{"age"})

		_, err := v.Validate()
		require.ErrorIs(t, err, valicomb.ErrMissingParameter)
	})

	t.Run("invalid regex pattern", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"code": "abc"})
		v.Rule("regex", []string{"code"}, "(")

		_, err := v.Validate()
		require.ErrorIs(t, err, valicomb.ErrInvalidPattern)
	})

	t.Run("nil rule callable", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"x": 1})
		v.RuleFunc(nil, []string{"x"})

		_, err := v.Validate()
		require.ErrorIs(t, err, valicomb.ErrNilRuleFunc)
	})

	t.Run("configuration errors are never field errors", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"age": 30})
		v.Rule("min", []string{"age"})

		_, err := v.Validate()
		require.Error(t, err)
		assert.Empty(t, v.Errors())
	})
}

func TestValidator_SkipPolicy(t *testing.T) {
	t.Parallel()

	t.Run("empty values skip non-required rules", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"nickname": ""})
		v.Rule("lengthMin", []string{"nickname"}, 3)

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("a required field is validated even when empty", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"nickname": ""})
		v.Rule("required", []string{"nickname"})
		v.Rule("lengthMin", []string{"nickname"}, 3)

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, v.FieldErrors("nickname"), 2)
	})

	t.Run("optional field skips rules while unset", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{})
		v.Rule("optional", []string{"bio"})
		v.Rule("lengthMin", []string{"bio"}, 3)

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("optional field is validated once set, even to empty", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"bio": ""})
		v.Rule("optional", []string{"bio"})
		v.Rule("lengthMin", []string{"bio"}, 3)

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("nullable field skips rules on nil", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"age": nil})
		v.Rule("nullable", []string{"age"})
		v.Rule("integer", []string{"age"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("nullable field is validated when non-nil", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"age": "not a number"})
		v.Rule("nullable", []string{"age"})
		v.Rule("integer", []string{"age"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("requiredWith observes siblings even on an empty field", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"password": "secret", "password_confirm": ""})
		v.Rule("requiredWith", []string{"password_confirm"}, "password")

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("accepted runs on falsy values", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"tos": false})
		v.Rule("accepted", []string{"tos"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestValidator_Wildcards(t *testing.T) {
	t.Parallel()

	t.Run("wildcard fans out over list elements", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{
			"users": []any{
				map[string]any{"email": "a@example.com"},
				map[string]any{"email": "bad"},
			},
		})
		v.Rule("email", []string{"users.*.email"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, v.FieldErrors("users.*.email"), 1)
	})

	t.Run("all elements passing yields no error", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{
			"scores": []any{float64(10), float64(20)},
		})
		v.Rule("min", []string{"scores.*"}, 5)

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("gaps are ignored unless the field is required", func(t *testing.T) {
		t.Parallel()

		data := map[string]any{
			"users": []any{
				map[string]any{"email": "a@example.com"},
				map[string]any{"name": "no email here"},
			},
		}

		v := valicomb.New(data)
		v.Rule("email", []string{"users.*.email"})
		ok, err := v.Validate()
		require.NoError(t, err)
		assert.True(t, ok)

		v = valicomb.New(data)
		v.Rule("required", []string{"users.*.email"})
		v.Rule("email", []string{"users.*.email"})
		ok, err = v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("numeric segments index into lists", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"tags": []any{"go", "web"}})
		v.Rule("equals", []string{"tags.0"}, "expected")

		// tags.0 resolves to "go"; the sibling path "expected" does not exist,
		// so equals fails rather than erroring.
		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestValidator_WithData(t *testing.T) {
	t.Parallel()

	v := valicomb.New(map[string]any{"email": "bad"})
	v.Rule("required", []string{"email"})
	v.Rule("email", []string{"email"})
	v.Label("email", "E-mail")

	fork := v.WithData(map[string]any{"email": "good@example.com"})

	okFork, err := fork.Validate()
	require.NoError(t, err)
	assert.True(t, okFork)

	okOrig, err := v.Validate()
	require.NoError(t, err)
	assert.False(t, okOrig)

	// The fork carries rules and labels but no error state.
	assert.Empty(t, fork.Errors())
	assert.Equal(t, []string{"E-mail is not a valid email address"}, v.FieldErrors("email"))
}

func TestValidator_Idempotence(t *testing.T) {
	t.Parallel()

	v := valicomb.New(map[string]any{"email": "bad"})
	v.Rule("email", []string{"email"})

	for range 3 {
		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, v.FieldErrors("email"), 1)
	}
}

func TestValidator_StopOnFirstFail(t *testing.T) {
	t.Parallel()

	t.Run("at most one error is recorded", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"a": "", "b": "", "c": ""})
		v.SetStopOnFirstFail(true)
		v.Rule("required", []string{"a", "b", "c"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)

		total := 0
		for _, msgs := range v.Errors() {
			total += len(msgs)
		}
		assert.Equal(t, 1, total)
	})

	t.Run("strict extras honor the stop", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"name": "", "extra": 1})
		v.SetStopOnFirstFail(true)
		v.SetStrict(true)
		v.Rule("required", []string{"name"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Len(t, v.Errors(), 1)
		assert.Empty(t, v.ExtraFields())
	})
}

func TestValidator_StrictMode(t *testing.T) {
	t.Parallel()

	t.Run("extra fields are reported in sorted order", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"name": "x", "zed": 2, "extra": 1}, valicomb.WithStrict())
		v.Rule("required", []string{"name"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"extra", "zed"}, v.ExtraFields())
		assert.Equal(t, []string{"Extra is not an allowed field"}, v.FieldErrors("extra"))
	})

	t.Run("nested rule paths cover their root segment", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{
			"user": map[string]any{"email": "a@example.com"},
		}, valicomb.WithStrict())
		v.Rule("email", []string{"user.email"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, v.ExtraFields())
	})

	t.Run("off by default", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"anything": 1})
		ok, err := v.Validate()
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestValidator_AddRules(t *testing.T) {
	t.Parallel()

	v := valicomb.New(map[string]any{"email": "bad", "age": 3})
	v.AddRules(
		valicomb.RuleDef{Rule: "email", Fields: []string{"email"}, Message: "{field} looks wrong"},
		valicomb.RuleDef{Rule: "min", Fields: []string{"age"}, Params: []any{18}},
	)

	ok, err := v.Validate()
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, []string{"Email looks wrong"}, v.FieldErrors("email"))
	assert.Equal(t, []string{"Age must be at least 18"}, v.FieldErrors("age"))
}

func TestValidator_CustomRules(t *testing.T) {
	t.Parallel()

	t.Run("anonymous rule func", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"word": "kayak"})
		v.RuleFunc(func(field string, value any, params []any, data map[string]any) bool {
			s, ok := value.(string)
			if !ok {
				return false
			}
			for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
				if s[i] != s[j] {
					return false
				}
			}
			return true
		}, []string{"word"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("anonymous rule failure uses entry message", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"word": "banana"})
		v.RuleFunc(func(field string, value any, params []any, data map[string]any) bool {
			return false
		}, []string{"word"}).Message("{field} must read the same backwards")

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"Word must read the same backwards"}, v.FieldErrors("word"))
	})

	t.Run("message rule func overrides templates", func(t *testing.T) {
		t.Parallel()

		v := valicomb.New(map[string]any{"n": 7})
		v.RuleMessageFunc(func(field string, value any, params []any, data map[string]any) (bool, string) {
			return false, "{field} was rejected by the callable"
		}, []string{"n"})

		ok, err := v.Validate()
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, []string{"N was rejected by the callable"}, v.FieldErrors("n"))
	})
}
