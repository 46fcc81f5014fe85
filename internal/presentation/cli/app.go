// Package cli wires the discovery pipeline into a command-line run.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/tesso57/rssminer/internal/application/settings"
	"github.com/tesso57/rssminer/internal/application/usecase"
	"github.com/tesso57/rssminer/internal/infrastructure/feed"
	"github.com/tesso57/rssminer/internal/infrastructure/httpclient"
	"github.com/tesso57/rssminer/internal/infrastructure/opml"
	"github.com/tesso57/rssminer/internal/infrastructure/page"
	"github.com/tesso57/rssminer/internal/infrastructure/urllist"
)

// ErrNoURLs is returned when neither an input file nor arguments name a page.
var ErrNoURLs = errors.New("no URLs to process: pass page URLs as arguments or --input")

// App runs one discovery batch.
type App struct {
	Discovery *usecase.DiscoveryService
	Exporter  usecase.SubscriptionService
	Printer   *Printer
}

// NewApp builds the production object graph from s.
func NewApp(s settings.Settings, out io.Writer, log logrus.FieldLogger) *App {
	client := httpclient.New(httpclient.Options{
		Timeout:      s.HTTP.Timeout,
		UserAgent:    s.HTTP.UserAgent,
		HostInterval: s.HTTP.HostInterval,
	})
	validator := feed.NewCachedValidator(feed.NewValidator(client, s.HTTP.MaxBodyBytes), s.CacheTTL)
	scanner := page.NewScanner(client, s.HTTP.MaxBodyBytes)
	return &App{
		Discovery: usecase.NewDiscoveryService(scanner, validator, log),
		Exporter:  usecase.NewSubscriptionService(opml.Codec{}),
		Printer:   NewPrinter(out),
	}
}

// Run reads the page list, discovers feeds and writes the subscription file(s).
func (a *App) Run(ctx context.Context, s settings.Settings) error {
	filter, err := s.FilterValue()
	if err != nil {
		return err
	}
	urls, err := collectURLs(s)
	if err != nil {
		return err
	}

	a.Printer.Start(len(urls))
	feeds, report := a.Discovery.DiscoverAll(ctx, urls, usecase.DiscoveryOptions{
		Concurrency: s.Concurrency,
		Verbose:     s.Verbose,
	})
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("discovery interrupted: %w", err)
	}

	a.Printer.Feeds(feeds)
	a.Printer.Summary(report)
	if len(feeds) == 0 {
		a.Printer.NothingFound()
		return nil
	}

	if s.Split {
		rssPath, atomPath := s.SplitPaths()
		results, err := a.Exporter.ExportSplit(feeds, rssPath, atomPath)
		for _, res := range results {
			// A failed write also leaves Written false; only report skips on success.
			if res.Written || err == nil {
				a.Printer.Exported(res)
			}
		}
		return err
	}

	res, err := a.Exporter.Export(feeds, s.Output, filter)
	if err != nil {
		return err
	}
	a.Printer.Exported(res)
	return nil
}

func collectURLs(s settings.Settings) ([]string, error) {
	var urls []string
	if s.Input != "" {
		fromFile, err := urllist.Read(s.Input)
		if err != nil {
			return nil, err
		}
		urls = append(urls, fromFile...)
	}
	urls = append(urls, s.URLs...)
	if len(urls) == 0 {
		return nil, ErrNoURLs
	}
	return urls, nil
}
