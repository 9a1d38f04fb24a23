package lang

import (
	"cmp"
	"context"
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// Catalog maps a rule name to its error message template.
type Catalog map[string]string

// DefaultLanguage is the catalog code used when no language is selected.
const DefaultLanguage = "en"

// KeyNotAllowed is the catalog key for the strict-mode message reported for
// input fields no rule covers. It is not a rule name.
const KeyNotAllowed = "notAllowed"

//go:embed translations/*.yml
var translationsFS embed.FS

// logger is silent by default. SetLogger opts catalog loading into the
// caller's logging setup.
var logger = slog.New(slog.DiscardHandler)

// SetLogger replaces the logger used by catalog loading.
func SetLogger(l *slog.Logger) {
	if l != nil {
		logger = l
	}
}

var (
	embeddedOnce sync.Once
	embedded     map[string]Catalog
)

// loadEmbedded parses the embedded catalog files once. The files ship with
// the binary, so a parse failure is a packaging bug and panics.
func loadEmbedded() map[string]Catalog {
	embeddedOnce.Do(func() {
		parsed, err := LoadDir(context.Background(), translationsFS, "translations")
		if err != nil {
			panic("lang: embedded catalogs: " + err.Error())
		}
		embedded = parsed
	})
	return embedded
}

// Default returns the embedded catalog for the given two-letter language
// code. Unknown codes fall back to English. The returned map is shared; treat
// it as read-only and copy before mutating.
func Default(code string) Catalog {
	catalogs := loadEmbedded()
	if catalog, ok := catalogs[strings.ToLower(code)]; ok {
		return catalog
	}
	return catalogs[DefaultLanguage]
}

// Supported returns the sorted language codes of the embedded catalogs.
func Supported() []string {
	catalogs := loadEmbedded()
	codes := make([]string, 0, len(catalogs))
	for code := range catalogs {
		codes = append(codes, code)
	}
	slices.Sort(codes)
	return codes
}

// Load reads and parses one catalog file from the filesystem. The parser is
// chosen by file extension.
func Load(ctx context.Context, fsys fs.FS, path string) (Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Join(ErrLoadingFileCancelled, err)
	}

	parser := NewParserForFile(path)
	if parser == nil {
		return nil, errors.Join(ErrUnsupportedFormat, errors.New(path))
	}

	content, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	return parser.Parse(ctx, string(content))
}

// LoadDir loads every supported catalog file in a directory, keyed by the
// lowercased filename stem ("de.yml" becomes "de"). Files with unsupported
// extensions are skipped.
func LoadDir(ctx context.Context, fsys fs.FS, dir string) (map[string]Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadFile, err)
	}

	catalogs := make(map[string]Catalog)
	for _, entry := range entries {
		if entry.IsDir() || NewParserForFile(entry.Name()) == nil {
			logger.DebugContext(ctx, "skipping non-catalog entry", "name", entry.Name())
			continue
		}
		path := dir + "/" + entry.Name()
		catalog, err := Load(ctx, fsys, path)
		if err != nil {
			return nil, err
		}
		stem := strings.TrimSuffix(entry.Name(), "."+getFileExtension(entry.Name()))
		catalogs[strings.ToLower(stem)] = catalog
	}
	return catalogs, nil
}

// maxAcceptLanguageLength bounds header parsing. RFC 7231 sets no limit, but
// 4KB covers any legitimate header.
const maxAcceptLanguageLength = 4096

type langWithQ struct {
	lang string
	q    float64
}

func parseAcceptLanguageHeader(header string) []langWithQ {
	if header == "" {
		return nil
	}

	if len(header) > maxAcceptLanguageLength {
		header = header[:maxAcceptLanguageLength]
	}

	var languages []langWithQ

	for part := range strings.SplitSeq(header, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		langAndQ := strings.Split(part, ";")
		tag := strings.ToLower(strings.TrimSpace(langAndQ[0]))
		q := 1.0

		if len(langAndQ) > 1 {
			qPart := strings.TrimSpace(langAndQ[1])
			if strings.HasPrefix(qPart, "q=") {
				if qVal, err := strconv.ParseFloat(qPart[2:], 64); err == nil && qVal >= 0 && qVal <= 1 {
					q = qVal
				}
			}
		}

		if tag != "" {
			languages = append(languages, langWithQ{lang: tag, q: q})
		}
	}

	slices.SortFunc(languages, func(a, b langWithQ) int {
		return cmp.Compare(b.q, a.q)
	})

	return languages
}

// Match negotiates a catalog code from an RFC 7231 Accept-Language header.
// Exact matches are tried first in quality order (en-US matches en-US), then
// base-language fallback (en-US matches en). When nothing matches, the
// fallback code is returned.
func Match(header string, supported []string, fallback string) string {
	if header == "" || len(supported) == 0 {
		return fallback
	}

	normalized := make([]string, len(supported))
	for i, code := range supported {
		normalized[i] = strings.ToLower(code)
	}

	languages := parseAcceptLanguageHeader(header)

	for _, lq := range languages {
		if slices.Contains(normalized, lq.lang) {
			return lq.lang
		}
	}

	for _, lq := range languages {
		if idx := strings.Index(lq.lang, "-"); idx > 0 {
			base := lq.lang[:idx]
			if slices.Contains(normalized, base) {
				return base
			}
		}
	}

	return fallback
}
