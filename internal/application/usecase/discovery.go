// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/tesso57/rssminer/internal/domain/discovery"
	"golang.org/x/sync/errgroup"
)

// ProbePaths are the conventional feed locations tried, in order, when a page
// advertises no feeds in its markup.
var ProbePaths = []string{"/feed", "/rss", "/feed.xml", "/rss.xml", "/atom.xml", "/index.xml"}

// PageScanner fetches a page and lists the feed links its markup advertises.
type PageScanner interface {
	Scan(ctx context.Context, pageURL string) ([]discovery.Candidate, error)
}

// FeedValidator classifies a candidate URL. It never fails.
type FeedValidator interface {
	Validate(ctx context.Context, feedURL string) discovery.Verdict
}

// Source records which discovery step produced a page's feeds.
type Source string

const (
	SourceNone   Source = "none"
	SourceMarkup Source = "markup"
	SourceProbe  Source = "probe"
)

// PageResult is the outcome of discovering feeds on one page.
// Err holds the page-level failure that was absorbed, if any.
type PageResult struct {
	PageURL string
	Feeds   []discovery.Feed
	Source  Source
	Err     error
}

// DiscoveryOptions controls a batch run.
type DiscoveryOptions struct {
	// Concurrency caps pages processed at once. Zero or less means unbounded.
	Concurrency int
	// Verbose logs progress at info level instead of debug.
	Verbose bool
}

// DiscoveryReport summarizes a batch run.
type DiscoveryReport struct {
	Requested int
	WithFeeds int
	Empty     int
	Failed    int
	TimedOut  int
	Feeds     int
}

// DiscoveryService finds feeds on pages.
type DiscoveryService struct {
	Scanner   PageScanner
	Validator FeedValidator
	Probes    []string
	Logger    logrus.FieldLogger
}

// NewDiscoveryService constructs a DiscoveryService using the default probe paths.
func NewDiscoveryService(scanner PageScanner, validator FeedValidator, logger logrus.FieldLogger) *DiscoveryService {
	return new(DiscoveryService{
		Scanner:   scanner,
		Validator: validator,
		Probes:    ProbePaths,
		Logger:    logger,
	})
}

// Discover returns the confirmed feeds of one page. Feeds advertised in markup
// take precedence; conventional paths are probed only when markup yields none,
// and probing stops at the first confirmed feed.
func (s *DiscoveryService) Discover(ctx context.Context, pageURL string) PageResult {
	result := PageResult{PageURL: pageURL, Source: SourceNone}
	log := s.logger().WithField("page", pageURL)

	candidates, err := s.Scanner.Scan(ctx, pageURL)
	if err != nil {
		result.Err = err
		return result
	}

	for _, c := range candidates {
		if c.Href == "" {
			log.Debug("skipping feed link without href")
			continue
		}
		feedURL, err := discovery.Resolve(pageURL, c.Href)
		if err != nil {
			log.WithError(err).Debug("skipping unresolvable feed link")
			continue
		}
		verdict := s.Validator.Validate(ctx, feedURL)
		if !verdict.IsFeed() {
			log.WithFields(logrus.Fields{"feed": feedURL, "reason": verdict.Reason}).Debug("candidate rejected")
			continue
		}
		result.Feeds = append(result.Feeds, discovery.Feed{
			Title:         c.DisplayTitle(),
			FeedURL:       feedURL,
			SourcePageURL: pageURL,
			Format:        verdict.Format,
		})
	}
	if len(result.Feeds) > 0 {
		result.Source = SourceMarkup
		return result
	}

	if feed, ok := s.probe(ctx, pageURL, log); ok {
		result.Feeds = []discovery.Feed{feed}
		result.Source = SourceProbe
	}
	return result
}

func (s *DiscoveryService) probe(ctx context.Context, pageURL string, log logrus.FieldLogger) (discovery.Feed, bool) {
	for _, path := range s.Probes {
		feedURL, err := discovery.Resolve(pageURL, path)
		if err != nil {
			continue
		}
		verdict := s.Validator.Validate(ctx, feedURL)
		if !verdict.IsFeed() {
			log.WithFields(logrus.Fields{"feed": feedURL, "reason": verdict.Reason}).Debug("probe rejected")
			continue
		}
		return discovery.Feed{
			Title:         discovery.HostTitle(pageURL),
			FeedURL:       feedURL,
			SourcePageURL: pageURL,
			Format:        verdict.Format,
		}, true
	}
	return discovery.Feed{}, false
}

// DiscoverAll runs Discover over every page concurrently and concatenates the
// feeds. A failing page never affects the others.
func (s *DiscoveryService) DiscoverAll(ctx context.Context, pageURLs []string, opt DiscoveryOptions) ([]discovery.Feed, DiscoveryReport) {
	if ctx == nil {
		ctx = context.Background()
	}
	// A page listed twice is fetched once, so its feeds are counted once.
	urls := normalizePageURLs(pageURLs)
	report := DiscoveryReport{Requested: len(urls)}
	results := make([]PageResult, len(urls))

	progressLevel, failureLevel := logrus.DebugLevel, logrus.DebugLevel
	if opt.Verbose {
		progressLevel, failureLevel = logrus.InfoLevel, logrus.WarnLevel
	}

	var g errgroup.Group
	if opt.Concurrency > 0 {
		g.SetLimit(opt.Concurrency)
	}
	for i, pageURL := range urls {
		g.Go(func() error {
			log := s.logger().WithField("page", pageURL)
			log.Log(progressLevel, "processing page")
			res := s.Discover(ctx, pageURL)
			switch {
			case res.Err != nil:
				log.WithError(res.Err).Log(failureLevel, "page skipped")
			case len(res.Feeds) == 0:
				log.Log(progressLevel, "no feeds found")
			default:
				log.WithFields(logrus.Fields{"count": len(res.Feeds), "source": res.Source}).Log(progressLevel, "feeds found")
			}
			results[i] = res
			return nil
		})
	}
	_ = g.Wait()

	var feeds []discovery.Feed
	for _, res := range results {
		switch {
		case res.Err != nil && isTimeout(res.Err):
			report.TimedOut++
		case res.Err != nil:
			report.Failed++
		case len(res.Feeds) == 0:
			report.Empty++
		default:
			report.WithFeeds++
		}
		feeds = append(feeds, res.Feeds...)
	}
	report.Feeds = len(feeds)
	return feeds, report
}

var discardLogger = func() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}()

func (s *DiscoveryService) logger() logrus.FieldLogger {
	if s.Logger != nil {
		return s.Logger
	}
	return discardLogger
}

func normalizePageURLs(urls []string) []string {
	if len(urls) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(urls))
	normalized := make([]string, 0, len(urls))
	for _, pageURL := range urls {
		trimmed := strings.TrimSpace(pageURL)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		normalized = append(normalized, trimmed)
	}
	return normalized
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var te interface{ Timeout() bool }
	return errors.As(err, &te) && te.Timeout()
}
