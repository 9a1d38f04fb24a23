package lang_test

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frostybee/valicomb/lang"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	t.Run("english catalog", func(t *testing.T) {
		t.Parallel()

		catalog := lang.Default("en")
		assert.Equal(t, "{field} is required", catalog["required"])
		assert.Equal(t, "{field} is not an allowed field", catalog[lang.KeyNotAllowed])
	})

	t.Run("unknown code falls back to english", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lang.Default(lang.DefaultLanguage), lang.Default("tlh"))
	})

	t.Run("code lookup is case-insensitive", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, lang.Default("de"), lang.Default("DE"))
	})
}

func TestSupported(t *testing.T) {
	t.Parallel()

	codes := lang.Supported()
	assert.Equal(t, []string{"de", "en", "es", "fr", "it", "pt"}, codes)
}

func TestEmbeddedCatalogsCoverFailingRules(t *testing.T) {
	t.Parallel()

	// Every catalog must template the same rule set as English, so switching
	// languages never degrades a message to the generic fallback.
	english := lang.Default("en")
	require.NotEmpty(t, english)

	for _, code := range lang.Supported() {
		catalog := lang.Default(code)
		for rule := range english {
			assert.Contains(t, catalog, rule, "catalog %s is missing %s", code, rule)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("yaml file", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"pirate.yml": {Data: []byte("required: \"{field} be missin'\"\n")},
		}
		catalog, err := lang.Load(context.Background(), fsys, "pirate.yml")
		require.NoError(t, err)
		assert.Equal(t, "{field} be missin'", catalog["required"])
	})

	t.Run("json file", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{
			"custom.json": {Data: []byte(`{"email": "{field} is not deliverable"}`)},
		}
		catalog, err := lang.Load(context.Background(), fsys, "custom.json")
		require.NoError(t, err)
		assert.Equal(t, "{field} is not deliverable", catalog["email"])
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()

		fsys := fstest.MapFS{"catalog.toml": {Data: []byte("x = 1")}}
		_, err := lang.Load(context.Background(), fsys, "catalog.toml")
		require.ErrorIs(t, err, lang.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := lang.Load(context.Background(), fstest.MapFS{}, "nope.yml")
		require.ErrorIs(t, err, lang.ErrFailedToReadFile)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		fsys := fstest.MapFS{"en.yml": {Data: []byte("required: x\n")}}
		_, err := lang.Load(ctx, fsys, "en.yml")
		require.ErrorIs(t, err, lang.ErrLoadingFileCancelled)
	})
}

func TestLoadDir(t *testing.T) {
	t.Parallel()

	fsys := fstest.MapFS{
		"catalogs/en.yml":    {Data: []byte("required: \"{field} is required\"\n")},
		"catalogs/NL.yml":    {Data: []byte("required: \"{field} is verplicht\"\n")},
		"catalogs/notes.txt": {Data: []byte("not a catalog")},
	}

	catalogs, err := lang.LoadDir(context.Background(), fsys, "catalogs")
	require.NoError(t, err)
	assert.Len(t, catalogs, 2)
	assert.Equal(t, "{field} is verplicht", catalogs["nl"]["required"])
}

func TestMatch(t *testing.T) {
	t.Parallel()

	supported := []string{"en", "de", "fr"}

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"exact match", "de", "de"},
		{"base language fallback", "de-AT,es;q=0.5", "de"},
		{"quality ordering", "es;q=0.9,fr;q=0.8,de", "de"},
		{"exact beats base fallback", "de-AT;q=0.9,fr;q=0.8", "fr"},
		{"no match uses fallback", "ja,ko;q=0.8", "en"},
		{"empty header uses fallback", "", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, lang.Match(tt.header, supported, "en"))
		})
	}
}
