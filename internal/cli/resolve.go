// internal/cli/resolve.go
package cli

import (
	"court/internal/config"
	"court/internal/ollama"
)

// DefaultTopic is debated when --topic is not given
const DefaultTopic = "What is better for society: total state control or complete anarchy and absence of vertical power structure"

// overrides carries flag values; zero values mean "not supplied"
type overrides struct {
	Topic            string
	Rounds           int
	ModelMachiavelli string
	ModelSocrates    string
	ModelJudge       string
	DebatesDir       string
}

// runSettings is the fully resolved configuration for one run
type runSettings struct {
	Topic            string
	Rounds           int
	ModelMachiavelli string
	ModelSocrates    string
	ModelJudge       string
	DebatesDir       string
	Options          ollama.Options
}

// resolve merges config defaults with flag overrides. Flags win when
// supplied; everything else comes from the config file's defaults.
func resolve(cfg *config.Config, o overrides) runSettings {
	s := runSettings{
		Topic:            DefaultTopic,
		Rounds:           cfg.Settings.DefaultRounds,
		ModelMachiavelli: cfg.Models.Machiavelli,
		ModelSocrates:    cfg.Models.Socrates,
		ModelJudge:       cfg.Models.Judge,
		DebatesDir:       cfg.Settings.DebatesDir,
		Options: ollama.Options{
			NumPredict: cfg.Settings.NumPredict,
			NumCtx:     cfg.Settings.NumCtx,
		},
	}
	if cfg.Settings.Temperature != nil {
		s.Options.Temperature = *cfg.Settings.Temperature
	}

	if o.Topic != "" {
		s.Topic = o.Topic
	}
	if o.Rounds > 0 {
		s.Rounds = o.Rounds
	}
	if o.ModelMachiavelli != "" {
		s.ModelMachiavelli = o.ModelMachiavelli
	}
	if o.ModelSocrates != "" {
		s.ModelSocrates = o.ModelSocrates
	}
	if o.ModelJudge != "" {
		s.ModelJudge = o.ModelJudge
	}
	if o.DebatesDir != "" {
		s.DebatesDir = o.DebatesDir
	}
	return s
}
