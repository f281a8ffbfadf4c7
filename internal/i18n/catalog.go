// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package i18n loads the localized message catalogs used by the console.
//
// Catalogs are YAML files named after their BCP 47 tag (vi.yaml, en.yaml).
// Every file is validated against a generated JSON Schema before use, so a
// loaded Catalog always defines every key in RequiredKeys. Loading fails
// rather than falling back when a file or key is missing.
package i18n

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Error codes returned while loading catalogs.
const (
	CodeCatalogInvalid  = "CATALOG_INVALID"
	CodeCatalogNotFound = "CATALOG_NOT_FOUND"
)

// Supported languages. Both must be present in every catalog set.
var (
	Vietnamese = language.Vietnamese
	English    = language.English
)

// RequiredLocales are the languages a Bundle must provide.
var RequiredLocales = []language.Tag{Vietnamese, English}

//go:embed locales/*.yaml
var embedded embed.FS

// Catalog maps message keys to display strings for one language. It is
// immutable once loaded.
type Catalog struct {
	tag      language.Tag
	version  *semver.Version
	messages map[Key]string
}

// Tag returns the catalog's language.
func (c *Catalog) Tag() language.Tag {
	return c.tag
}

// Version returns the catalog's declared version.
func (c *Catalog) Version() *semver.Version {
	return c.version
}

// Text returns the message for key. Loading guarantees every key in
// RequiredKeys, so a miss means the key was never added to the catalog
// schema; Text panics rather than print a placeholder.
func (c *Catalog) Text(key Key) string {
	v, err := c.Lookup(key)
	if err != nil {
		panic(err)
	}
	return v
}

// Lookup returns the message for key or a CATALOG_INVALID error.
func (c *Catalog) Lookup(key Key) (string, error) {
	v, ok := c.messages[key]
	if !ok {
		return "", oops.Code(CodeCatalogInvalid).
			With("locale", c.tag.String()).
			With("key", string(key)).
			Errorf("missing message key")
	}
	return v, nil
}

// Len returns the number of messages in the catalog.
func (c *Catalog) Len() int {
	return len(c.messages)
}

// Bundle holds one Catalog per language.
type Bundle struct {
	catalogs map[string]*Catalog
}

// LoadEmbedded loads the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	sub, err := fs.Sub(embedded, "locales")
	if err != nil {
		return nil, oops.Code(CodeCatalogNotFound).Wrapf(err, "open embedded locales")
	}
	return LoadFromFS(sub)
}

// LoadFromFS loads every *.yaml catalog at the root of fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "*.yaml")
	if err != nil {
		return nil, oops.Code(CodeCatalogNotFound).Wrapf(err, "glob catalogs")
	}
	sort.Strings(paths)

	b := &Bundle{catalogs: make(map[string]*Catalog, len(paths))}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, oops.Code(CodeCatalogNotFound).With("file", p).Wrapf(err, "read catalog")
		}
		cat, err := parseCatalog(p, data)
		if err != nil {
			return nil, err
		}
		key := cat.tag.String()
		if _, dup := b.catalogs[key]; dup {
			return nil, oops.Code(CodeCatalogInvalid).With("file", p).With("locale", key).Errorf("duplicate locale")
		}
		b.catalogs[key] = cat
	}

	for _, tag := range RequiredLocales {
		if _, ok := b.catalogs[tag.String()]; !ok {
			return nil, oops.Code(CodeCatalogNotFound).With("locale", tag.String()).Errorf("required catalog missing")
		}
	}
	return b, nil
}

// Catalog returns the catalog for tag.
func (b *Bundle) Catalog(tag language.Tag) (*Catalog, error) {
	cat, ok := b.catalogs[tag.String()]
	if !ok {
		return nil, oops.Code(CodeCatalogNotFound).With("locale", tag.String()).Errorf("no catalog for locale")
	}
	return cat, nil
}

// Locales returns the loaded language tags in sorted order.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.catalogs))
	for locale := range b.catalogs {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

func parseCatalog(file string, data []byte) (*Catalog, error) {
	if err := ValidateSchema(data); err != nil {
		return nil, oops.With("file", file).Wrap(err)
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, oops.Code(CodeCatalogInvalid).With("file", file).Wrapf(err, "decode catalog")
	}

	tag, err := language.Parse(strings.TrimSpace(doc.Locale))
	if err != nil {
		return nil, oops.Code(CodeCatalogInvalid).With("file", file).Wrapf(err, "parse locale %q", doc.Locale)
	}
	if want := strings.TrimSuffix(path.Base(file), path.Ext(file)); tag.String() != want {
		return nil, oops.Code(CodeCatalogInvalid).
			With("file", file).
			Errorf("locale %q does not match file name %q", tag.String(), want)
	}

	version, err := semver.StrictNewVersion(doc.Version)
	if err != nil {
		return nil, oops.Code(CodeCatalogInvalid).With("file", file).Wrapf(err, "parse version %q", doc.Version)
	}

	return &Catalog{
		tag:      tag,
		version:  version,
		messages: doc.Messages.messages(),
	}, nil
}
