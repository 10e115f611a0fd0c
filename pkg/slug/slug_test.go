package slug_test

import (
	"strings"
	"testing"

	"tescilofisi-backend/pkg/slug"

	"github.com/stretchr/testify/assert"
)

func TestMake(t *testing.T) {
	cases := []struct {
		name  string
		title string
		want  string
	}{
		{"turkish characters", "Marka Tescili & Şirket İşlemleri!", "marka-tescili-sirket-islemleri"},
		{"simple title", "Test Başlığı", "test-basligi"},
		{"already a slug", "patent-basvurusu", "patent-basvurusu"},
		{"whitespace runs", "a   b\t c", "a-b-c"},
		{"repeated hyphens", "a--b---c", "a-b-c"},
		{"leading and trailing junk", "  --Merhaba Dünya--  ", "merhaba-dunya"},
		{"digits kept", "2024 Patent Rehberi", "2024-patent-rehberi"},
		{"only symbols", "!!!", ""},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, slug.Make(tc.title))
		})
	}
}

func TestMakeIdempotent(t *testing.T) {
	titles := []string{
		"Marka Tescili & Şirket İşlemleri!",
		"Uluslararası Tescil Süreçleri",
		"çok   Güzel -- Bir Başlık",
		"already-valid-slug",
	}
	for _, title := range titles {
		once := slug.Make(title)
		assert.Equal(t, once, slug.Make(once), "slugify must be idempotent for %q", title)
	}
}

func TestMakeAlphabet(t *testing.T) {
	out := slug.Make("Fikri Mülkiyet: %100 Koruma (Rehber)")
	assert.NotEmpty(t, out)
	for _, r := range out {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-'
		assert.True(t, ok, "unexpected rune %q in slug %q", r, out)
	}
	assert.False(t, strings.HasPrefix(out, "-"))
	assert.False(t, strings.HasSuffix(out, "-"))
	assert.NotContains(t, out, "--")
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("marka-tescili"))
	assert.False(t, slug.Valid("Marka Tescili"))
	assert.False(t, slug.Valid(""))
	assert.False(t, slug.Valid("-leading"))
}
