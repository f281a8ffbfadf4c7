// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package i18n

import (
	"bytes"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// SchemaID is the canonical identifier of the catalog schema.
const SchemaID = "https://holomush.dev/schemas/holologin-catalog.schema.json"

// document is the on-disk shape of a catalog file.
type document struct {
	Locale   string       `json:"locale" yaml:"locale" jsonschema:"minLength=1,description=BCP 47 language tag matching the file name"`
	Version  string       `json:"version" yaml:"version" jsonschema:"minLength=1,description=Semantic version of the catalog"`
	Messages documentBody `json:"messages" yaml:"messages"`
}

// documentBody has one field per required key; the generated schema
// therefore rejects catalogs that are missing a key or add unknown ones.
type documentBody struct {
	MenuVietnamese               string `json:"menuVietnamese" yaml:"menuVietnamese" jsonschema:"minLength=1"`
	MenuEnglish                  string `json:"menuEnglish" yaml:"menuEnglish" jsonschema:"minLength=1"`
	MenuExit                     string `json:"menuExit" yaml:"menuExit" jsonschema:"minLength=1"`
	MenuPrompt                   string `json:"menuPrompt" yaml:"menuPrompt" jsonschema:"minLength=1"`
	Exiting                      string `json:"exiting" yaml:"exiting" jsonschema:"minLength=1"`
	ErrInvalidChoice             string `json:"errInvalidChoice" yaml:"errInvalidChoice" jsonschema:"minLength=1"`
	EnterAccountNumber           string `json:"enterAccountNumber" yaml:"enterAccountNumber" jsonschema:"minLength=1"`
	EnterPassword                string `json:"enterPassword" yaml:"enterPassword" jsonschema:"minLength=1"`
	EnterCaptcha                 string `json:"enterCaptcha" yaml:"enterCaptcha" jsonschema:"minLength=1"`
	LoginSuccess                 string `json:"loginSuccess" yaml:"loginSuccess" jsonschema:"minLength=1"`
	ErrCaptchaIncorrect          string `json:"errCaptchaIncorrect" yaml:"errCaptchaIncorrect" jsonschema:"minLength=1"`
	ErrorCheckInputIntLimit      string `json:"errorCheckInputIntLimit" yaml:"errorCheckInputIntLimit" jsonschema:"minLength=1"`
	ErrCheckInputIntLimit        string `json:"errCheckInputIntLimit" yaml:"errCheckInputIntLimit" jsonschema:"minLength=1"`
	ErrCheckInputAccount         string `json:"errCheckInputAccount" yaml:"errCheckInputAccount" jsonschema:"minLength=1"`
	ErrCheckLengthPassword       string `json:"errCheckLengthPassword" yaml:"errCheckLengthPassword" jsonschema:"minLength=1"`
	ErrCheckAlphanumericPassword string `json:"errCheckAlphanumericPassword" yaml:"errCheckAlphanumericPassword" jsonschema:"minLength=1"`
}

func (b documentBody) messages() map[Key]string {
	return map[Key]string{
		MenuVietnamese:               b.MenuVietnamese,
		MenuEnglish:                  b.MenuEnglish,
		MenuExit:                     b.MenuExit,
		MenuPrompt:                   b.MenuPrompt,
		Exiting:                      b.Exiting,
		ErrInvalidChoice:             b.ErrInvalidChoice,
		EnterAccountNumber:           b.EnterAccountNumber,
		EnterPassword:                b.EnterPassword,
		EnterCaptcha:                 b.EnterCaptcha,
		LoginSuccess:                 b.LoginSuccess,
		ErrCaptchaIncorrect:          b.ErrCaptchaIncorrect,
		ErrorCheckInputIntLimit:      b.ErrorCheckInputIntLimit,
		ErrCheckInputIntLimit:        b.ErrCheckInputIntLimit,
		ErrCheckInputAccount:         b.ErrCheckInputAccount,
		ErrCheckLengthPassword:       b.ErrCheckLengthPassword,
		ErrCheckAlphanumericPassword: b.ErrCheckAlphanumericPassword,
	}
}

// GenerateSchema returns the JSON Schema describing a catalog file.
func GenerateSchema() ([]byte, error) {
	r := jsonschema.Reflector{
		DoNotReference: true,
	}
	schema := r.Reflect(&document{})
	schema.ID = jsonschema.ID(SchemaID)
	schema.Title = "holologin message catalog"
	schema.Description = "Localized console messages for one language"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code("CATALOG_SCHEMA").Wrapf(err, "marshal schema")
	}
	return data, nil
}

var compiledSchema = sync.OnceValues(func() (*jschema.Schema, error) {
	raw, err := GenerateSchema()
	if err != nil {
		return nil, err
	}
	doc, err := jschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, oops.Code("CATALOG_SCHEMA").Wrapf(err, "parse schema")
	}

	c := jschema.NewCompiler()
	if err := c.AddResource(SchemaID, doc); err != nil {
		return nil, oops.Code("CATALOG_SCHEMA").Wrapf(err, "add schema resource")
	}
	sch, err := c.Compile(SchemaID)
	if err != nil {
		return nil, oops.Code("CATALOG_SCHEMA").Wrapf(err, "compile schema")
	}
	return sch, nil
})

// ValidateSchema checks raw catalog YAML against the catalog schema.
func ValidateSchema(data []byte) error {
	if len(data) == 0 {
		return oops.Code(CodeCatalogInvalid).Errorf("catalog data is empty")
	}

	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return oops.Code(CodeCatalogInvalid).Wrapf(err, "invalid YAML")
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	if err := sch.Validate(toJSONTypes(raw)); err != nil {
		return oops.Code(CodeCatalogInvalid).Wrapf(err, "schema validation failed")
	}
	return nil
}

// toJSONTypes normalizes YAML-decoded values into the shapes the schema
// validator understands.
func toJSONTypes(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = toJSONTypes(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = toJSONTypes(item)
		}
		return out
	case int:
		return json.Number(strconv.Itoa(val))
	case string, bool, float64, nil:
		return val
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return val
		}
		var out any
		if err := json.Unmarshal(b, &out); err != nil {
			return val
		}
		return out
	}
}
