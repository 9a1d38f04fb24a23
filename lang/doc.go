// Package lang provides the message catalogs behind validation errors: an
// embedded set of translations, parsers for loading custom catalogs from YAML
// or JSON files, and Accept-Language negotiation for picking a catalog per
// request.
//
// A catalog is a flat map from rule name to message template. Templates use
// the placeholders understood by the validator ({field}, {value}, {fieldN})
// plus printf-style conversion specifiers for rule parameters.
//
// # Embedded Catalogs
//
// The package embeds catalogs for a handful of languages. Default returns one
// by its two-letter code, falling back to English for unknown codes:
//
//	catalog := lang.Default("de")
//	v := valicomb.New(data, valicomb.WithCatalog(catalog))
//
// # Custom Catalogs
//
// Catalogs can also be loaded from files. The parser is chosen by file
// extension:
//
//	catalog, err := lang.Load(ctx, os.DirFS("translations"), "pirate.yml")
//	if err != nil {
//		return err
//	}
//	v := valicomb.New(data, valicomb.WithCatalog(catalog))
//
// A custom catalog only needs to cover the rules it wants to override;
// missing entries fall back to a generic message in the validator.
//
// # Language Negotiation
//
// Match implements RFC 7231 Accept-Language matching against the supported
// catalog codes, trying exact matches before base-language fallback:
//
//	code := lang.Match(r.Header.Get("Accept-Language"), lang.Supported(), lang.DefaultLanguage)
//	catalog := lang.Default(code)
package lang
