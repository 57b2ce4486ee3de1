// Package i18n хранит переводы интерфейса (ru, en, zh) и проверяет их при загрузке.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Table - переводы одного языка в виде плоских ключей "раздел.ключ".
type Table struct {
	lang    Language
	entries map[string]string
}

func (t *Table) Language() Language { return t.lang }

// T возвращает строку по ключу. Для ключа вне схемы возвращается сам ключ.
func (t *Table) T(key string) string {
	if s, ok := t.entries[key]; ok {
		return s
	}
	return key
}

func (t *Table) Tf(key string, args ...interface{}) string {
	return fmt.Sprintf(t.T(key), args...)
}

func (t *Table) Entries() map[string]string {
	return maps.Clone(t.entries)
}

type Catalog map[Language]*Table

// Table возвращает таблицу языка, неизвестный язык - таблицу по умолчанию.
func (c Catalog) Table(lang Language) *Table {
	if t, ok := c[lang]; ok {
		return t
	}
	return c[DefaultLanguage]
}

// Load читает встроенные таблицы.
func Load() (Catalog, error) {
	return LoadFS(localesFS)
}

// LoadFS читает locales/<lang>.yaml для каждого языка и сверяет ключи с Keys.
// Все найденные расхождения возвращаются одной ошибкой.
func LoadFS(fsys fs.FS) (Catalog, error) {
	catalog := make(Catalog, len(Languages))
	var errs []error

	for _, lang := range Languages {
		raw, err := fs.ReadFile(fsys, "locales/"+string(lang)+".yaml")
		if err != nil {
			errs = append(errs, fmt.Errorf("i18n: язык %s: %w", lang, err))
			continue
		}

		var tree map[string]interface{}
		if err := yaml.Unmarshal(raw, &tree); err != nil {
			errs = append(errs, fmt.Errorf("i18n: язык %s: неверный YAML: %w", lang, err))
			continue
		}

		entries := make(map[string]string)
		if err := flatten("", tree, entries); err != nil {
			errs = append(errs, fmt.Errorf("i18n: язык %s: %w", lang, err))
			continue
		}
		if err := checkKeys(lang, entries); err != nil {
			errs = append(errs, err)
			continue
		}
		catalog[lang] = &Table{lang: lang, entries: entries}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return catalog, nil
}

var defaultCatalog = sync.OnceValues(Load)

// Default возвращает встроенный каталог, загруженный один раз.
func Default() (Catalog, error) {
	return defaultCatalog()
}

// MustDefault паникует, если встроенные таблицы повреждены.
func MustDefault() Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

func flatten(prefix string, node map[string]interface{}, out map[string]string) error {
	for key, value := range node {
		full := key
		if prefix != "" {
			full = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[full] = v
		case map[string]interface{}:
			if err := flatten(full, v, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("ключ %q: ожидалась строка, получено %T", full, value)
		}
	}
	return nil
}

func checkKeys(lang Language, entries map[string]string) error {
	var errs []error
	for _, key := range Keys {
		if _, ok := entries[key]; !ok {
			errs = append(errs, fmt.Errorf("i18n: язык %s: отсутствует ключ %q", lang, key))
		}
	}

	extra := make([]string, 0)
	for key := range entries {
		if !slices.Contains(Keys, key) {
			extra = append(extra, key)
		}
	}
	sort.Strings(extra)
	for _, key := range extra {
		errs = append(errs, fmt.Errorf("i18n: язык %s: лишний ключ %q", lang, key))
	}
	return errors.Join(errs...)
}
