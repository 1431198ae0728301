package main

import (
	"errors"
	"fmt"

	"github.com/alnah/go-md2word"
	"github.com/alnah/go-md2word/internal/config"
	"github.com/alnah/go-md2word/internal/hints"
)

// loadConfig builds the configuration from defaults, the config file named by
// flagConfig (or MD2WORD_CONFIG) and MD2WORD_* variables. Command flags are
// merged by the caller, which must then call Validate.
func loadConfig(flagConfig string, env *Environment) (*config.Config, *envConfig, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, nil, fmt.Errorf("loading config: %w", err)
		}
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, envCfg, nil
}

// mergeRenderFlags merges rendering flags into config. Flags win.
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	applyHighlight(f.highlight, &cfg.Render)
	if f.rawHTML {
		cfg.Render.RawHTML = true
	}
}

// converterOptions maps the render section to library options.
func converterOptions(r config.RenderConfig) []md2word.Option {
	opts := []md2word.Option{
		md2word.WithRawHTML(r.RawHTML),
		md2word.WithMaxInputSize(r.MaxInputBytes),
	}
	if r.Highlight {
		opts = append(opts, md2word.WithHighlighting(r.HighlightStyle))
	}
	return opts
}

// newConverter creates the library converter for cfg, with a hint listing
// styles when the highlight style is unknown.
func newConverter(cfg *config.Config) (*md2word.Converter, error) {
	conv, err := md2word.NewConverter(converterOptions(cfg.Render)...)
	if err != nil {
		if errors.Is(err, md2word.ErrUnknownHighlightStyle) {
			return nil, fmt.Errorf("%w%s", err, hints.ForHighlightStyle(md2word.HighlightStyles()))
		}
		return nil, err
	}
	return conv, nil
}

// runConfig prints the effective configuration or writes a default one.
func runConfig(args []string, env *Environment) error {
	flags, err := parseConfigFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	if flags.init != "" {
		if err := config.WriteExample(config.DefaultConfig(), flags.init); err != nil {
			return err
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Created %s\n", flags.init)
		}
		return nil
	}

	cfg, _, err := loadConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	_, err = env.Stdout.Write(data)
	return err
}
