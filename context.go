package main

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/llehouerou/tunematch/internal/apply"
	"github.com/llehouerou/tunematch/internal/artwork"
	"github.com/llehouerou/tunematch/internal/config"
	"github.com/llehouerou/tunematch/internal/lastfm"
	"github.com/llehouerou/tunematch/internal/logging"
	"github.com/llehouerou/tunematch/internal/provider"
	"github.com/llehouerou/tunematch/internal/provider/api"
	"github.com/llehouerou/tunematch/internal/provider/deezer"
	"github.com/llehouerou/tunematch/internal/provider/itunes"
	"github.com/llehouerou/tunematch/internal/provider/musicbrainz"
	"github.com/llehouerou/tunematch/internal/state"
)

const userAgent = "tunematch/0.1 (https://github.com/llehouerou/tunematch)"

// commandContext holds the flags shared by every command and the
// resources opened from them.
type commandContext struct {
	configFlag   string
	providerFlag []string
	logLevelFlag string

	cfg      *config.Config
	log      *zap.Logger
	closeLog func() error
	state    *state.Manager
}

// ensureConfig loads the configuration once and applies flag overrides.
func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configFlag)
	if err != nil {
		return nil, fmt.Errorf("load configuration: %w", err)
	}
	if len(c.providerFlag) > 0 {
		cfg.Providers = slices.Clone(c.providerFlag)
	}
	if c.logLevelFlag != "" {
		cfg.Log.Level = c.logLevelFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// logger opens the log file once.
func (c *commandContext) logger() (*zap.Logger, error) {
	if c.log != nil {
		return c.log, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	log, closeFn, err := logging.New(logging.Config{Level: cfg.Log.Level, File: cfg.Log.File})
	if err != nil {
		return nil, err
	}
	c.log, c.closeLog = log, closeFn
	return log, nil
}

// openState opens the state store once.
func (c *commandContext) openState() (*state.Manager, error) {
	if c.state != nil {
		return c.state, nil
	}
	st, err := state.Open()
	if err != nil {
		return nil, fmt.Errorf("open state: %w", err)
	}
	c.state = st
	return st, nil
}

// close releases whatever was opened, state first so its last save is
// logged.
func (c *commandContext) close() error {
	var errs []error
	if c.state != nil {
		errs = append(errs, c.state.Close())
		c.state = nil
	}
	if c.closeLog != nil {
		errs = append(errs, c.closeLog())
		c.closeLog = nil
		c.log = nil
	}
	return errors.Join(errs...)
}

// newProvider builds the named metadata provider.
func newProvider(name string) (provider.Provider, error) {
	switch name {
	case musicbrainz.Name:
		return musicbrainz.NewProvider(musicbrainz.NewClient()), nil
	case itunes.Name:
		return itunes.New(), nil
	case deezer.Name:
		return deezer.New(), nil
	}
	return nil, fmt.Errorf("unknown provider %q", name)
}

// newSearcher builds the aggregator over the configured providers. A nil
// cache disables caching.
func newSearcher(cfg *config.Config, cache provider.Cache, log *zap.Logger) (*provider.Searcher, error) {
	providers := make([]provider.Provider, 0, len(cfg.Providers))
	for _, name := range cfg.Providers {
		p, err := newProvider(name)
		if err != nil {
			return nil, err
		}
		providers = append(providers, p)
	}

	opts := []provider.Option{
		provider.WithMaxResults(cfg.MaxResults),
		provider.WithLogger(log),
	}
	if cache != nil && cfg.CacheTTL() > 0 {
		opts = append(opts, provider.WithCache(cache, cfg.CacheTTL()))
	}
	return provider.NewSearcher(providers, opts...), nil
}

// newApplier builds the tag writer, with cover art when enabled.
func newApplier(cfg *config.Config, log *zap.Logger) *apply.Applier {
	opts := []apply.Option{apply.WithLogger(log)}
	if cfg.Artwork.Enabled {
		downloader := api.New(userAgent, api.WithRateLimit(200*time.Millisecond), api.WithRetry(2, time.Second, 5*time.Second))
		finderOpts := []artwork.Option{
			artwork.WithMaxSize(cfg.Artwork.MaxSize),
			artwork.WithLogger(log),
		}
		if cfg.HasLastfmConfig() {
			finderOpts = append(finderOpts, artwork.WithAlbumLookup(lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)))
		}
		opts = append(opts, apply.WithArtwork(artwork.NewFinder(downloader, finderOpts...)))
	}
	return apply.New(opts...)
}
