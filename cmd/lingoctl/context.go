package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"lingomap/pkg/catalog"
	"lingomap/pkg/config"
	"lingomap/pkg/dialect"
	"lingomap/pkg/mapstyle"
	"lingomap/pkg/model"
	"lingomap/pkg/request"
	"lingomap/pkg/voice"
)

type commandContext struct {
	configFlag  *string
	catalogFlag *string

	once    sync.Once
	config  *config.Config
	catalog *catalog.Catalog
	err     error
}

func newCommandContext(configFlag, catalogFlag *string) *commandContext {
	return &commandContext{
		configFlag:  configFlag,
		catalogFlag: catalogFlag,
	}
}

// ensure loads the config and the catalogue once.
func (c *commandContext) ensure() (*config.Config, *catalog.Catalog, error) {
	c.once.Do(func() {
		cfg, err := config.Load(strings.TrimSpace(*c.configFlag))
		if err != nil {
			c.err = err
			return
		}
		path := cfg.Catalog.Path
		if c.catalogFlag != nil && *c.catalogFlag != "" {
			path = *c.catalogFlag
		}
		var cat *catalog.Catalog
		if path == "" {
			cat, err = catalog.LoadEmbedded()
		} else {
			cat, err = catalog.Load(path)
		}
		if err != nil {
			c.err = fmt.Errorf("load catalogue: %w", err)
			return
		}
		c.config = cfg
		c.catalog = cat
	})
	return c.config, c.catalog, c.err
}

func (c *commandContext) resolver() (*mapstyle.Resolver, error) {
	cfg, cat, err := c.ensure()
	if err != nil {
		return nil, err
	}
	return mapstyle.NewResolver(cat, mapstyle.Options{
		FillOpacity:   cfg.Map.FillOpacity,
		MutedOpacity:  cfg.Map.MutedOpacity,
		StrokeColor:   cfg.Map.StrokeColor,
		StrokeWeight:  cfg.Map.StrokeWeight,
		ExcludedColor: cfg.Map.ExcludedColor,
		NoDataColor:   cfg.Map.NoDataColor,
	}), nil
}

// chain builds an uncached voice chain. order, when set, replaces the
// configured provider order.
func (c *commandContext) chain(order []string) (*voice.Chain, error) {
	cfg, cat, err := c.ensure()
	if err != nil {
		return nil, err
	}
	vcfg := cfg.Voice
	if len(order) > 0 {
		vcfg.Order = order
	}
	providers, unknown := voice.BuildProviders(vcfg, request.New(cfg.Request.Timeout.Std()))
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown providers: %s", strings.Join(unknown, ", "))
	}
	return voice.New(voice.Config{
		Providers:       providers,
		Rules:           dialect.New(vcfg.DefaultLocale),
		Catalog:         cat,
		ProviderTimeout: vcfg.ProviderTimeout.Std(),
		MaxTextLength:   vcfg.MaxTextLength,
	})
}

// filterFlags binds one flag per taxonomy level.
type filterFlags struct {
	model.Filter
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.Family, "family", "", "Filter by family")
	flags.StringVar(&f.Branch, "branch", "", "Filter by branch")
	flags.StringVar(&f.Group, "group", "", "Filter by group")
	flags.StringVar(&f.Subgroup, "subgroup", "", "Filter by subgroup")
	flags.StringVar(&f.Language, "language", "", "Filter by language")
	flags.StringVar(&f.Dialect, "dialect", "", "Filter by dialect")
}

func parseDepth(s string) (model.Level, bool, error) {
	if s == "" {
		return 0, false, nil
	}
	l, ok := model.ParseLevel(s)
	if !ok {
		return 0, false, fmt.Errorf("unknown depth %q", s)
	}
	return l, true, nil
}
