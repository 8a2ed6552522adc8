package normalize

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Character classes shared by the Thai rules.
const (
	thaiConsonant = `[\x{0E01}-\x{0E2E}]`
	// Above and below vowel signs, tone marks, thanthakhat and nikhahit.
	thaiMark = `[\x{0E31}\x{0E34}-\x{0E39}\x{0E47}-\x{0E4D}]`
	// เ แ โ ใ ไ
	thaiLeadingVowel = `[\x{0E40}-\x{0E44}]`
	// Horizontal whitespace only; line breaks are structural.
	hspace = `[ \t\x{00A0}]`
)

const saraAm = "ำ"

// brokenWords maps common words that extractors emit as
// "consonant + space + vowel sign" to their correct spelling. A single
// space in a key matches any run of horizontal whitespace.
var brokenWords = map[string]string{
	"ส านัก":      "สำนัก",
	"จ านวน":      "จำนวน",
	"น าไป":       "นำไป",
	"น ามา":       "นำมา",
	"อ านวย":      "อำนวย",
	"จ าเป็น":     "จำเป็น",
	"ประจ า":      "ประจำ",
	"ก าหนด":      "กำหนด",
	"ก ากับ":      "กำกับ",
	"ล าดับ":      "ลำดับ",
	"ค าสั่ง":     "คำสั่ง",
	"ท าการ":      "ทำการ",
	"ท าให้":      "ทำให้",
	"ด าเนิน":     "ดำเนิน",
	"ด าริ":       "ดำริ",
	"บ าบัด":      "บำบัด",
	"บ ารุง":      "บำรุง",
	"ต าแหน่ง":    "ตำแหน่ง",
	"ต าบล":       "ตำบล",
	"ต ารา":       "ตำรา",
	"ต ารวจ":      "ตำรวจ",
	"ค าถาม":      "คำถาม",
	"ค าตอบ":      "คำตอบ",
	"ค าอธิบาย":   "คำอธิบาย",
	"ค าชี้แจง":   "คำชี้แจง",
	"ค าขอ":       "คำขอ",
	"ค าร้อง":     "คำร้อง",
	"ค ารับรอง":   "คำรับรอง",
	"ค าแนะน า":   "คำแนะนำ",
	"ก ารผลิต":    "การผลิต",
	"ก ารด าเนิน": "การดำเนิน",
	"ก ารก าหนด":  "การกำหนด",
	"ก ารจ า":     "การจำ",
	"บริก าร":     "บริการ",
	"ก ารบริก าร": "การบริการ",
	"ห าม":        "ห้าม",
	"ค ่า":        "ค่า",
	"ท ี่":        "ที่",
	"ก ็":         "ก็",
	"เพ ื่อ":      "เพื่อ",
	"ต ้อง":       "ต้อง",
	"ม ี":         "มี",
	"ให ้":        "ให้",
}

type pattern struct {
	re   *regexp.Regexp
	repl string
}

func compile(pairs ...string) []pattern {
	out := make([]pattern, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, pattern{re: regexp.MustCompile(pairs[i]), repl: pairs[i+1]})
	}
	return out
}

func applyAll(patterns []pattern) func(string) string {
	return func(s string) string {
		for _, p := range patterns {
			s = p.re.ReplaceAllString(s, p.repl)
		}
		return s
	}
}

// dictionaryRule replaces the broken words, longest key first so compound
// entries win over the words they contain.
func dictionaryRule(words map[string]string) Rule {
	keys := make([]string, 0, len(words))
	for k := range words {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(keys[i]), utf8.RuneCountInString(keys[j])
		if li != lj {
			return li > lj
		}
		return keys[i] < keys[j]
	})

	subs := make([]pattern, 0, len(keys))
	for _, k := range keys {
		parts := strings.Split(k, " ")
		for i := range parts {
			parts[i] = regexp.QuoteMeta(parts[i])
		}
		subs = append(subs, pattern{
			re:   regexp.MustCompile(strings.Join(parts, hspace+"+")),
			repl: words[k],
		})
	}

	return Rule{
		Name: "dictionary",
		Apply: func(s string) string {
			for _, sub := range subs {
				s = sub.re.ReplaceAllLiteralString(s, sub.repl)
			}
			return s
		},
	}
}

var doubledSaraAm = strings.NewReplacer("ำา", saraAm, "าำ", saraAm, "ำำ", saraAm)

// dedupe collapses sara am doubled by the earlier rules.
func dedupe(s string) string {
	for {
		out := doubledSaraAm.Replace(s)
		if out == s {
			return out
		}
		s = out
	}
}

func newThai() *Pipeline {
	return NewPipeline(
		NFC,
		dictionaryRule(brokenWords),
		Rule{
			Name: "collapse-sara-am",
			Apply: applyAll(compile(
				`\x{0E4D}`+hspace+`*\x{0E32}`, saraAm,
				`(`+thaiConsonant+`)`+hspace+`+\x{0E32}`, "${1}"+saraAm,
			)),
		},
		Rule{
			Name: "reattach-marks",
			Apply: applyAll(compile(
				`(`+thaiConsonant+`)`+hspace+`+([\x{0E30}\x{0E33}\x{0E45}])`, "${1}${2}",
				`(`+thaiConsonant+`)`+hspace+`+(`+thaiMark+`)`, "${1}${2}",
				`(`+thaiMark+`)`+hspace+`+(`+thaiConsonant+`)`, "${1}${2}",
				`(`+thaiMark+`)`+hspace+`+(`+thaiMark+`)`, "${1}${2}",
			)),
		},
		Rule{
			Name: "leading-vowel",
			Apply: applyAll(compile(
				`(`+thaiLeadingVowel+`)`+hspace+`+(`+thaiConsonant+`)`, "${1}${2}",
			)),
		},
		Rule{Name: "dedupe-sara-am", Apply: dedupe},
	)
}

var thai = newThai()

// Thai returns the Thai repair pipeline. Its rules run in this order:
//
//   - nfc: canonical composition
//   - dictionary: whole-word fixes for commonly broken words
//   - collapse-sara-am: nikhahit + sara aa, and consonant + space + sara aa, become sara am
//   - reattach-marks: spaces between consonants and combining marks are dropped
//   - leading-vowel: spaces after เ แ โ ใ ไ are dropped
//   - dedupe-sara-am: doubled sara am is collapsed
//
// The pipeline is shared and safe for concurrent use.
func Thai() *Pipeline {
	return thai
}
