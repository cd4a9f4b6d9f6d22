// Package i18n loads the embedded UI catalogs and formats localized text
// through golang.org/x/text/message.
package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the source locale every other catalog falls back to.
const BaseLocale = "en-US"

var ErrNoCatalogs = errors.New("i18n: no catalog files found")

//go:embed locales/*/*.yaml locales/*/*.md
var embeddedFS embed.FS

type catalogFile struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

// Bundle holds every locale's messages and help text.
type Bundle struct {
	tags     []language.Tag
	matcher  language.Matcher
	builder  *catalog.Builder
	messages map[string]map[string]string
	home     map[string]string
}

// Load reads the catalogs embedded in the binary.
func Load() (*Bundle, error) {
	return LoadFS(embeddedFS)
}

// LoadFS reads locales/<locale>/*.yaml catalogs and locales/<locale>/home.md
// from fsys.
func LoadFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, ErrNoCatalogs
	}
	sort.Strings(paths)

	b := &Bundle{
		builder:  catalog.NewBuilder(catalog.Fallback(language.MustParse(BaseLocale))),
		messages: map[string]map[string]string{},
		home:     map[string]string{},
	}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", p, err)
		}
		var file catalogFile
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", p, err)
		}
		if err := b.add(p, file); err != nil {
			return nil, err
		}
	}
	if _, ok := b.messages[BaseLocale]; !ok {
		return nil, fmt.Errorf("i18n: base locale %s is not defined", BaseLocale)
	}

	for locale := range b.messages {
		data, err := fs.ReadFile(fsys, path.Join("locales", locale, "home.md"))
		if err != nil {
			continue
		}
		b.home[locale] = string(data)
	}

	locales := b.Locales()
	// the matcher's first tag is its default, so the base locale goes first
	b.tags = append(b.tags, language.MustParse(BaseLocale))
	for _, l := range locales {
		if l != BaseLocale {
			b.tags = append(b.tags, language.MustParse(l))
		}
	}
	b.matcher = language.NewMatcher(b.tags)
	return b, nil
}

func (b *Bundle) add(p string, file catalogFile) error {
	locale := strings.TrimSpace(file.Locale)
	if want := path.Base(path.Dir(p)); locale != want {
		return fmt.Errorf("i18n: catalog %s: locale %q must match directory %q", p, locale, want)
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return fmt.Errorf("i18n: catalog %s: %w", p, err)
	}
	msgs, ok := b.messages[locale]
	if !ok {
		msgs = map[string]string{}
		b.messages[locale] = msgs
	}
	for key, value := range file.Messages {
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("i18n: catalog %s: blank message key", p)
		}
		if _, dup := msgs[key]; dup {
			return fmt.Errorf("i18n: catalog %s: duplicate key %q", p, key)
		}
		msgs[key] = value
		if err := b.builder.SetString(tag, key, value); err != nil {
			return fmt.Errorf("i18n: catalog %s: key %q: %w", p, key, err)
		}
	}
	return nil
}

// Locales returns the available locale identifiers, sorted.
func (b *Bundle) Locales() []string {
	out := make([]string, 0, len(b.messages))
	for l := range b.messages {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}

// Match picks the closest supported locale; unknown input falls back to the
// base locale.
func (b *Bundle) Match(locale string) string {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		return BaseLocale
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return BaseLocale
	}
	return b.tags[idx].String()
}

// Printer returns a formatter for the best match of locale.
func (b *Bundle) Printer(locale string) *Printer {
	matched := b.Match(locale)
	return &Printer{
		locale: matched,
		bundle: b,
		p:      message.NewPrinter(language.MustParse(matched), message.Catalog(b.builder)),
	}
}

// Printer formats catalog messages for one locale.
type Printer struct {
	locale string
	bundle *Bundle
	p      *message.Printer
}

func (p *Printer) Locale() string { return p.locale }

// T formats the message registered under key. Unknown keys are printed as is.
// Numbers are printed without digit grouping.
func (p *Printer) T(key string, args ...any) string {
	for i, a := range args {
		switch a.(type) {
		case float64, float32, int, int64:
			args[i] = plain{a}
		}
	}
	return p.p.Sprintf(key, args...)
}

// plain formats its value with package fmt, bypassing the locale-aware
// number formatting of message.Printer.
type plain struct{ v any }

func (n plain) Format(f fmt.State, verb rune) {
	fmt.Fprintf(f, fmt.FormatString(f, verb), n.v)
}

// Home returns the markdown help text for this locale.
func (p *Printer) Home() string {
	if md, ok := p.bundle.home[p.locale]; ok {
		return md
	}
	return p.bundle.home[BaseLocale]
}
