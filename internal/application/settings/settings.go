// Package settings defines application-level configuration data.
package settings

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/tesso57/rssminer/internal/domain/subscription"
)

// HTTPConfig controls the shared HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" kong:"help='Per-request timeout',default='10s'"`
	UserAgent    string        `yaml:"user_agent" kong:"help='User-Agent header sent with every request',default='rssminer/1.0'"`
	HostInterval time.Duration `yaml:"host_interval" kong:"help='Minimum spacing between requests to one host (0 disables)',default='0s'"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" kong:"help='Maximum bytes read from a response body',default='10485760'"`
}

// LogConfig controls diagnostic output.
type LogConfig struct {
	Level  string `yaml:"level" kong:"help='Log level (trace/debug/info/warn/error)',default='info',env='RSSMINER_LOG_LEVEL'"`
	Format string `yaml:"format" kong:"help='Log format',enum='text,json',default='text'"`
}

// Settings represents the application configuration.
type Settings struct {
	URLs        []string      `yaml:"-" kong:"arg,optional,name='url',help='Page URLs to search for feeds'"`
	Input       string        `yaml:"input" kong:"short='i',help='File with one page URL per line',type='path'"`
	Output      string        `yaml:"output" kong:"short='o',help='OPML output path',default='feeds.opml',env='RSSMINER_OUTPUT'"`
	Filter      string        `yaml:"filter" kong:"short='f',help='Keep only one feed format',enum='both,rss,atom',default='both'"`
	Split       bool          `yaml:"split" kong:"help='Write RSS and Atom feeds to separate files'"`
	Concurrency int           `yaml:"concurrency" kong:"short='c',help='Pages processed at once (0 for unbounded)',default='0',env='RSSMINER_CONCURRENCY'"`
	Verbose     bool          `yaml:"verbose" kong:"short='v',help='Report progress per page'"`
	CacheTTL    time.Duration `yaml:"cache_ttl" kong:"name='cache-ttl',help='How long feed verdicts are remembered (0 for the whole run)',default='0s'"`
	HTTP        HTTPConfig    `yaml:"http" kong:"embed,prefix='http.'"`
	Log         LogConfig     `yaml:"log" kong:"embed,prefix='log.'"`
}

// FilterValue returns the parsed output filter.
func (s Settings) FilterValue() (subscription.Filter, error) {
	return subscription.ParseFilter(s.Filter)
}

// SplitPaths derives the per-format output paths from Output, e.g.
// feeds.opml becomes feeds-rss.opml and feeds-atom.opml.
func (s Settings) SplitPaths() (rssPath, atomPath string) {
	ext := filepath.Ext(s.Output)
	base := strings.TrimSuffix(s.Output, ext)
	if ext == "" {
		ext = ".opml"
	}
	return base + "-rss" + ext, base + "-atom" + ext
}
