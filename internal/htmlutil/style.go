// Package htmlutil holds the HTML helpers shared by the DOCX and PDF
// converters and the section segmenter.
package htmlutil

import "strings"

// Style is an ordered list of CSS declarations. Declarations keep the
// order in which they were first set so rendered output is stable.
type Style struct {
	decls []declaration
}

type declaration struct {
	prop  string
	value string
}

// Set adds a declaration, replacing the value of an existing property in place.
func (s *Style) Set(prop, value string) *Style {
	for i := range s.decls {
		if s.decls[i].prop == prop {
			s.decls[i].value = value
			return s
		}
	}
	s.decls = append(s.decls, declaration{prop: prop, value: value})
	return s
}

// Get returns the value for prop.
func (s *Style) Get(prop string) (string, bool) {
	for _, d := range s.decls {
		if d.prop == prop {
			return d.value, true
		}
	}
	return "", false
}

// Delete removes prop if present.
func (s *Style) Delete(prop string) {
	for i := range s.decls {
		if s.decls[i].prop == prop {
			s.decls = append(s.decls[:i], s.decls[i+1:]...)
			return
		}
	}
}

// Len returns the number of declarations.
func (s *Style) Len() int {
	return len(s.decls)
}

// String renders the declarations as "prop:value;" pairs.
func (s *Style) String() string {
	var sb strings.Builder
	for _, d := range s.decls {
		sb.WriteString(d.prop)
		sb.WriteByte(':')
		sb.WriteString(d.value)
		sb.WriteByte(';')
	}
	return sb.String()
}
