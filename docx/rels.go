package docx

import (
	"encoding/base64"
	"path"
	"strings"
)

// Relationship is one entry of word/_rels/document.xml.rels.
type Relationship struct {
	ID       string
	Type     string
	Target   string
	External bool
}

// partSource is the part lookup a RelationshipResolver reads media through.
type partSource interface {
	Part(name string) ([]byte, bool)
}

// RelationshipResolver maps relationship ids to their targets and loads
// embedded media.
type RelationshipResolver struct {
	parts partSource
	rels  map[string]Relationship
}

// NewRelationshipResolver builds the id table. A nil rels yields a
// resolver that finds nothing.
func NewRelationshipResolver(parts partSource, rels *relationshipsXML) *RelationshipResolver {
	rr := &RelationshipResolver{
		parts: parts,
		rels:  make(map[string]Relationship),
	}
	if rels == nil {
		return rr
	}
	for _, r := range rels.Relationships {
		rr.rels[r.ID] = Relationship{
			ID:       r.ID,
			Type:     r.Type,
			Target:   r.Target,
			External: strings.EqualFold(r.TargetMode, "External"),
		}
	}
	return rr
}

// Lookup returns the relationship with the given id.
func (rr *RelationshipResolver) Lookup(id string) (Relationship, bool) {
	r, ok := rr.rels[id]
	return r, ok
}

// mediaCandidates lists the part names to try for a target. Targets are
// relative to word/ unless they start with a slash, which makes them
// package-root relative. The unprefixed target is always the fallback.
func mediaCandidates(target string) []string {
	var primary string
	if strings.HasPrefix(target, "/") {
		primary = strings.TrimLeft(target, "/")
	} else {
		primary = path.Join("word", target)
	}
	if primary == target {
		return []string{primary}
	}
	return []string{primary, target}
}

// Media returns the bytes and part name of an internal media target.
func (rr *RelationshipResolver) Media(id string) ([]byte, string, bool) {
	r, ok := rr.rels[id]
	if !ok || r.External || rr.parts == nil {
		return nil, "", false
	}
	for _, name := range mediaCandidates(r.Target) {
		if data, ok := rr.parts.Part(name); ok {
			return data, name, true
		}
	}
	return nil, "", false
}

// DataURI returns the media for id as a base64 data URI.
func (rr *RelationshipResolver) DataURI(id string) (string, bool) {
	data, name, ok := rr.Media(id)
	if !ok {
		return "", false
	}
	return DataURI(MIMEType(name), data), true
}

// DataURI encodes data as a base64 data URI.
func DataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// MIMEType infers a media type from a file name's extension.
func MIMEType(name string) string {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(name), ".")) {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "bmp":
		return "image/bmp"
	case "svg":
		return "image/svg+xml"
	case "tif", "tiff":
		return "image/tiff"
	case "webp":
		return "image/webp"
	default:
		return "application/octet-stream"
	}
}
