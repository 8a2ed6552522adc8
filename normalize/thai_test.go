package normalize

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleByName(t *testing.T, p *Pipeline, name string) Rule {
	t.Helper()
	for _, r := range p.Rules() {
		if r.Name == name {
			return r
		}
	}
	require.Failf(t, "rule not found", "no rule named %q", name)
	return Rule{}
}

func TestThai_RuleOrder(t *testing.T) {
	var names []string
	for _, r := range Thai().Rules() {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{
		"nfc",
		"dictionary",
		"collapse-sara-am",
		"reattach-marks",
		"leading-vowel",
		"dedupe-sara-am",
	}, names)
}

func TestThai_DictionaryRule(t *testing.T) {
	dict := ruleByName(t, Thai(), "dictionary")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"two spaces", "ส  านัก", "สำนัก"},
		{"tab", "จ\tานวน", "จำนวน"},
		{"compound before its parts", "ก ารด าเนิน", "การดำเนิน"},
		{"tone mark", "ท ี่", "ที่"},
		{"inside sentence", "ตามที่ ส านักงาน", "ตามที่ สำนักงาน"},
		{"no match", "สำนัก", "สำนัก"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dict.Apply(tt.in))
		})
	}
}

func TestThai_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dictionary word", "ส  านัก", "สำนัก"},
		{"decomposed sara am", "นํา", "นำ"},
		{"spaced nikhahit", "น ํ า", "นำ"},
		{"consonant space sara aa", "ก า", "กำ"},
		{"spaced upper vowel", "ก ิน", "กิน"},
		{"spaced tone mark chain", "ก ิ ่ง", "กิ่ง"},
		{"leading vowel", "เ กิด", "เกิด"},
		{"sara a", "จ ะ", "จะ"},
		{"doubled sara am", "กำา", "กำ"},
		{"tripled sara am", "กำาา", "กำ"},
		{"latin untouched", "Terms  of Reference", "Terms  of Reference"},
		{"line breaks kept", "ก\nา", "ก\nา"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Thai().Normalize(tt.in))
		})
	}
}

func TestThai_Idempotent(t *testing.T) {
	corpus := []string{
		"ส  านัก งานคณะกรรมการ",
		"ประจ า ปีงบประมาณ พ.ศ. ๒๕๖๗",
		"ก ารด าเนิน ก ารบริก าร",
		"เ พ ื่อ ให ้ ม ี ก ็",
		"<p style=\"text-align:justify;\">ค าสั่ง  ที่  ๑</p>",
		"ำาำาำา",
		"ก ํ า ํ า",
	}

	alphabet := []rune("กขคนมสอเแโใไะัาำิีึืุู็่้๊๋์ํ \t\n1๑a")
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		var sb strings.Builder
		n := rng.Intn(24)
		for j := 0; j < n; j++ {
			sb.WriteRune(alphabet[rng.Intn(len(alphabet))])
		}
		corpus = append(corpus, sb.String())
	}

	for _, in := range corpus {
		once := Thai().Normalize(in)
		twice := Thai().Normalize(once)
		require.Equal(t, once, twice, "input %q", in)
	}
}

func TestChain(t *testing.T) {
	upper := Func(strings.ToUpper)
	trim := Func(strings.TrimSpace)

	assert.Equal(t, "ABC", Chain(trim, upper, nil).Normalize("  abc "))
	assert.Equal(t, "x", Identity.Normalize("x"))
}

func TestWesternDigits(t *testing.T) {
	assert.Equal(t, "มาตรา 12", WesternDigits("มาตรา ๑๒"))
	assert.Equal(t, "0123456789", WesternDigits("๐๑๒๓๔๕๖๗๘๙"))
	assert.Equal(t, "ข้อ 7", WesternDigits("ข้อ 7"))
}
