package usecase

import (
	"errors"

	"github.com/tesso57/rssminer/internal/domain/discovery"
	"github.com/tesso57/rssminer/internal/domain/subscription"
)

// SubscriptionCodec encodes and persists subscription documents.
type SubscriptionCodec interface {
	Marshal(doc subscription.Document) ([]byte, error)
	WriteFile(path string, doc subscription.Document) error
}

// ExportResult describes one export target.
type ExportResult struct {
	Path    string
	Filter  subscription.Filter
	Entries int
	// Written is false when there was nothing to export and no file was created.
	Written bool
}

// SubscriptionService turns discovered feeds into subscription files.
type SubscriptionService struct {
	Codec SubscriptionCodec
}

// NewSubscriptionService constructs a SubscriptionService.
func NewSubscriptionService(codec SubscriptionCodec) SubscriptionService {
	return SubscriptionService{Codec: codec}
}

// Serialize returns the encoded subscription document for feeds.
func (s SubscriptionService) Serialize(feeds []discovery.Feed, filter subscription.Filter) ([]byte, error) {
	return s.Codec.Marshal(subscription.Build(feeds, filter))
}

// Export writes feeds to path. An empty feed list writes nothing and is not an error.
func (s SubscriptionService) Export(feeds []discovery.Feed, path string, filter subscription.Filter) (ExportResult, error) {
	result := ExportResult{Path: path, Filter: filter}
	if len(feeds) == 0 {
		return result, nil
	}
	doc := subscription.Build(feeds, filter)
	if err := s.Codec.WriteFile(path, doc); err != nil {
		return result, err
	}
	result.Entries = len(doc.Outlines)
	result.Written = true
	return result, nil
}

// ExportSplit writes RSS and Atom feeds to separate files. A format with no
// feeds produces no file.
func (s SubscriptionService) ExportSplit(feeds []discovery.Feed, rssPath, atomPath string) ([]ExportResult, error) {
	targets := []struct {
		path   string
		filter subscription.Filter
	}{
		{rssPath, subscription.FilterRSS},
		{atomPath, subscription.FilterAtom},
	}

	results := make([]ExportResult, 0, len(targets))
	var errs []error
	for _, target := range targets {
		result := ExportResult{Path: target.path, Filter: target.filter}
		doc := subscription.Build(feeds, target.filter)
		if len(doc.Outlines) > 0 {
			if err := s.Codec.WriteFile(target.path, doc); err != nil {
				errs = append(errs, err)
			} else {
				result.Entries = len(doc.Outlines)
				result.Written = true
			}
		}
		results = append(results, result)
	}
	return results, errors.Join(errs...)
}
