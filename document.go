package mdblock

import (
	"context"
	"log/slog"
	"strings"

	"github.com/inful/mdfp"
	"gopkg.in/yaml.v3"

	"pkt.systems/mdblock/internal/logfields"
)

// Document is a parsed source buffer.
type Document struct {
	Root   *Node
	Source []byte
	// FrontMatter is set when the parser strips a leading front matter
	// block. Spans still refer to Source, front matter included.
	FrontMatter *FrontMatter

	parser *Parser
	refs   *ReferenceTable
}

// CollectDefinitions builds the document's reference table. It must run
// before ResolveReferences.
func (d *Document) CollectDefinitions() *ReferenceTable {
	d.refs = CollectDefinitions(d.Root)
	return d.refs
}

// References returns the table built by CollectDefinitions, or nil.
func (d *Document) References() *ReferenceTable {
	return d.refs
}

// ResolveReferences substitutes every reference link and image in the tree.
// It returns ErrDefinitionsNotCollected when CollectDefinitions has not run.
func (d *Document) ResolveReferences() error {
	if d.refs == nil {
		return ErrDefinitionsNotCollected
	}
	p := d.parser
	if p == nil {
		p = defaultParser
	}
	log := p.logger()
	debug := log.Enabled(context.Background(), slog.LevelDebug)
	return resolveReferences(d.Root, d.refs, func(label string) {
		p.cfg.recorder.IncNoMatch("reference")
		if debug {
			log.LogAttrs(context.Background(), slog.LevelDebug, "reference left unresolved",
				logfields.Label(label),
			)
		}
	})
}

// Fingerprint returns a content fingerprint of the document: the decoded
// front matter, minus any stored fingerprint field, re-serialized as YAML,
// together with the body. Reformatting the front matter does not change it.
func (d *Document) Fingerprint() (string, error) {
	body := d.Source
	header := ""
	if d.FrontMatter != nil {
		body = d.Source[d.FrontMatter.End:]
		fields, err := d.FrontMatter.Decode()
		if err != nil {
			return "", err
		}
		delete(fields, mdfp.FingerprintField)
		if len(fields) > 0 {
			out, err := yaml.Marshal(fields)
			if err != nil {
				return "", err
			}
			header = strings.TrimSuffix(string(out), "\n")
		}
	}
	return mdfp.CalculateFingerprintFromParts(header, string(body)), nil
}
