// Package opml encodes subscription documents as OPML 2.0.
package opml

import (
	"os"
	"path/filepath"

	"github.com/gilliek/go-opml/opml"
	"github.com/tesso57/rssminer/internal/domain/discovery"
	"github.com/tesso57/rssminer/internal/domain/subscription"
)

const version = "2.0"

func toOPML(doc subscription.Document) opml.OPML {
	out := opml.OPML{
		Version: version,
		Head:    opml.Head{Title: doc.Title},
		Body:    opml.Body{Outlines: make([]opml.Outline, 0, len(doc.Outlines))},
	}
	for _, o := range doc.Outlines {
		out.Body.Outlines = append(out.Body.Outlines, opml.Outline{
			Text:    o.Text,
			Type:    o.Type,
			XMLURL:  o.XMLURL,
			HTMLURL: o.HTMLURL,
		})
	}
	return out
}

// Marshal encodes doc as an indented OPML document with an XML declaration.
func Marshal(doc subscription.Document) ([]byte, error) {
	text, err := toOPML(doc).XML()
	if err != nil {
		return nil, err
	}
	return []byte(text + "\n"), nil
}

// WriteFile encodes doc and writes it to path, creating parent directories.
func WriteFile(path string, doc subscription.Document) error {
	data, err := Marshal(doc)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return &discovery.IOError{Op: "write", Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &discovery.IOError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// Codec adapts the package functions to usecase.SubscriptionCodec.
type Codec struct{}

// Marshal encodes doc.
func (Codec) Marshal(doc subscription.Document) ([]byte, error) {
	return Marshal(doc)
}

// WriteFile writes doc to path.
func (Codec) WriteFile(path string, doc subscription.Document) error {
	return WriteFile(path, doc)
}
