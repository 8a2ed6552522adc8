// Package normalize provides pluggable text normalization stages that run
// over extracted text and rendered markup before it leaves a converter.
//
// A stage is any Normalizer. The Thai pipeline returned by Thai repairs
// combining-mark sequences that naive extractors break apart; other
// scripts can plug in their own Pipeline of rules.
package normalize

import "golang.org/x/text/unicode/norm"

// Normalizer rewrites a string. Implementations must be safe for
// concurrent use and must not depend on document structure.
type Normalizer interface {
	Normalize(s string) string
}

// Func adapts an ordinary function to the Normalizer interface.
type Func func(string) string

// Normalize calls f(s).
func (f Func) Normalize(s string) string {
	return f(s)
}

// Identity leaves text untouched.
var Identity Normalizer = Func(func(s string) string { return s })

// NFC is the canonical composition rule.
var NFC = Rule{Name: "nfc", Apply: norm.NFC.String}

// Rule is a single named rewrite.
type Rule struct {
	Name  string
	Apply func(string) string
}

// Pipeline applies an ordered list of rules. A full pass over the rules is
// repeated until the text stops changing, so the result is a fixed point
// and normalizing it again is a no-op.
//
// Every rule in a pipeline must either shorten the text or remove
// whitespace from it (reordering-only rules such as NFC are allowed as
// long as they are idempotent), which bounds the number of passes.
type Pipeline struct {
	rules []Rule
}

// NewPipeline returns a pipeline applying rules in the given order.
func NewPipeline(rules ...Rule) *Pipeline {
	return &Pipeline{rules: append([]Rule(nil), rules...)}
}

// Rules returns a copy of the pipeline's rules in application order.
func (p *Pipeline) Rules() []Rule {
	return append([]Rule(nil), p.rules...)
}

// Normalize runs the pipeline to a fixed point.
func (p *Pipeline) Normalize(s string) string {
	for {
		out := p.pass(s)
		if out == s {
			return out
		}
		s = out
	}
}

func (p *Pipeline) pass(s string) string {
	for _, r := range p.rules {
		s = r.Apply(s)
	}
	return s
}

// Chain runs several normalizers one after another.
func Chain(stages ...Normalizer) Normalizer {
	return Func(func(s string) string {
		for _, st := range stages {
			if st != nil {
				s = st.Normalize(s)
			}
		}
		return s
	})
}
