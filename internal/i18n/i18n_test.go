package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)
	require.Equal(t, []string{"en-US", "ko-KR"}, b.Locales())
}

func TestCatalogsShareKeys(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	base := b.messages[BaseLocale]
	for _, locale := range b.Locales() {
		for key := range base {
			assert.Contains(t, b.messages[locale], key, "locale %s", locale)
		}
		assert.NotEmpty(t, b.home[locale], "locale %s has no home text", locale)
	}
}

func TestPrinterFormats(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	p := b.Printer("en-US")
	assert.Equal(t, "velocity after fall: 9.810 m/s", p.T("freefall.velocity", 9.81))
	assert.Equal(t, "final position: 11.000 m", p.T("linear.result", 11.0))
	assert.Equal(t, "Projectile Motion", p.T("plot.title"))
}

func TestPrinterNoGrouping(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	for _, locale := range b.Locales() {
		p := b.Printer(locale)
		assert.Contains(t, p.T("linear.result", 1234567.0), "1234567.000", "locale %s", locale)
		assert.Contains(t, p.T("freefall.velocity", -98100.5), "-98100.500", "locale %s", locale)
	}
}

func TestMatch(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"en-US", "en-US"},
		{"ko-KR", "ko-KR"},
		{"ko", "ko-KR"},
		{"en-GB", "en-US"},
		{"fr-FR", "en-US"},
		{"", "en-US"},
		{"!!", "en-US"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, b.Match(tt.in), "input %q", tt.in)
	}
}

func TestPrinterUnknownKey(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "no.such.key", b.Printer("en-US").T("no.such.key"))
}

func TestKoreanDiffers(t *testing.T) {
	b, err := Load()
	require.NoError(t, err)

	en := b.Printer("en-US")
	ko := b.Printer("ko-KR")
	assert.Equal(t, "ko-KR", ko.Locale())
	assert.NotEqual(t, en.T("freefall.header"), ko.T("freefall.header"))
	assert.NotEqual(t, en.Home(), ko.Home())
}

func TestLoadFSErrors(t *testing.T) {
	_, err := LoadFS(fstest.MapFS{})
	require.ErrorIs(t, err, ErrNoCatalogs)

	_, err = LoadFS(fstest.MapFS{
		"locales/en-US/ui.yaml": {Data: []byte("locale: ko-KR\nmessages:\n  a: b\n")},
	})
	require.ErrorContains(t, err, "must match directory")

	_, err = LoadFS(fstest.MapFS{
		"locales/ko-KR/ui.yaml": {Data: []byte("locale: ko-KR\nmessages:\n  a: b\n")},
	})
	require.ErrorContains(t, err, "base locale")

	_, err = LoadFS(fstest.MapFS{
		"locales/en-US/ui.yaml": {Data: []byte("locale: [\n")},
	})
	require.ErrorContains(t, err, "parse")
}

func TestHomeFallsBackToBase(t *testing.T) {
	b, err := LoadFS(fstest.MapFS{
		"locales/en-US/ui.yaml": {Data: []byte("locale: en-US\nmessages:\n  a: b\n")},
		"locales/en-US/home.md": {Data: []byte("# hi\n")},
		"locales/ko-KR/ui.yaml": {Data: []byte("locale: ko-KR\nmessages:\n  a: c\n")},
	})
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", b.Printer("ko-KR").Home())
	assert.Equal(t, "c", b.Printer("ko-KR").T("a"))
}
