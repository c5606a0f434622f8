// Package cli defines the cobra command wiring for the court CLI.
// This file owns startup checks, error presentation, and exit codes.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"court/internal/config"
	"court/internal/debate"
	"court/internal/export"
	"court/internal/ollama"
	"court/internal/render"
	"court/internal/runlog"
)

var (
	topicFlag      string
	roundsFlag     int
	modelMFlag     string
	modelSFlag     string
	judgeFlag      string
	configFlag     string
	debatesDirFlag string
)

// errReported marks failures already rendered as a console panel
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "court",
	Short: "Historical court debate between Socrates and Machiavelli on local models",
	Long: `Court stages a scripted debate between two personas, Machiavelli and
Socrates, each answered by a locally hosted Ollama model, and lets a
third judge model deliver a verdict. Every run renders to the terminal
and is saved as one Markdown transcript.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE:          run,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&topicFlag, "topic", DefaultTopic, "Debate topic")
	rootCmd.Flags().IntVar(&roundsFlag, "rounds", 0, "Number of debate rounds (default from config)")
	rootCmd.Flags().StringVar(&modelMFlag, "model-m", "", "Ollama model for Machiavelli (default from config)")
	rootCmd.Flags().StringVar(&modelSFlag, "model-s", "", "Ollama model for Socrates (default from config)")
	rootCmd.Flags().StringVar(&judgeFlag, "judge", "", "Ollama model for the judge (default from config)")
	rootCmd.Flags().StringVar(&configFlag, "config", config.DefaultPath, "Path to the config file")
	rootCmd.Flags().StringVar(&debatesDirFlag, "debates-dir", "", "Directory for saved transcripts (default from config)")
}

func run(cmd *cobra.Command, args []string) error {
	console := render.New()

	cfg, err := config.Load(configFlag)
	if err != nil {
		console.Error("Error", fmt.Sprintf(
			"Could not load %s: %v\n\nCreate config.yaml with models, prompts, and settings sections.",
			configFlag, err))
		return errReported
	}

	settings := resolve(cfg, overrides{
		Topic:            topicFlag,
		Rounds:           roundsFlag,
		ModelMachiavelli: modelMFlag,
		ModelSocrates:    modelSFlag,
		ModelJudge:       judgeFlag,
		DebatesDir:       debatesDirFlag,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := ollama.New()
	if cfg.Settings.Host != "" {
		client = ollama.NewWithBaseURL(cfg.Settings.Host)
	}

	installed, err := client.List(ctx)
	if err != nil {
		console.Error("Error: Ollama server is not running.", fmt.Sprintf(
			"%v\n\nPlease start the Ollama app or run \"ollama serve\" in a terminal.", err))
		return errReported
	}

	if err := ensureModels(ctx, client, console, installed, settings); err != nil {
		return err
	}

	console.Settings(settings.Topic, settings.Rounds,
		settings.ModelMachiavelli, settings.ModelSocrates, settings.ModelJudge)
	console.Banner(settings.Topic)

	logger, err := runlog.NewLogger(settings.DebatesDir)
	if err != nil {
		console.Error("Error", fmt.Sprintf("Could not open the run log: %v", err))
		return errReported
	}

	runID := runlog.NewRunID()
	_ = logger.Append(runlog.Event{
		Event:  runlog.EventRunStarted,
		RunID:  runID,
		Topic:  settings.Topic,
		Rounds: settings.Rounds,
	})

	sink := &journalSink{
		console: console,
		log:     logger,
		runID:   runID,
		models: map[string]string{
			"Machiavelli": settings.ModelMachiavelli,
			"Socrates":    settings.ModelSocrates,
			"Judge":       settings.ModelJudge,
		},
	}

	engine := debate.New(debate.Params{
		Backend:     client,
		Sink:        sink,
		Machiavelli: debate.NewMachiavelli(settings.ModelMachiavelli, cfg.Prompts.Machiavelli),
		Socrates:    debate.NewSocrates(settings.ModelSocrates, cfg.Prompts.Socrates),
		JudgeModel:  settings.ModelJudge,
		JudgePrompt: cfg.Prompts.Judge,
		Topic:       settings.Topic,
		Rounds:      settings.Rounds,
		Options:     &settings.Options,
	})

	result, err := engine.Run(ctx)
	if err != nil {
		console.Error("Error", err.Error())
		return errReported
	}

	if result.Interrupted {
		console.Warn("Debate interrupted by user. Saving partial log...")
		_ = logger.Append(runlog.Event{
			Event: runlog.EventRunInterrupted,
			RunID: runID,
			Turns: len(result.Transcript),
		})
	}

	path, err := export.Write(result, settings.DebatesDir)
	if err != nil {
		console.Error("Error writing debate log", fmt.Sprintf("Could not save file: %v", err))
		return errReported
	}
	console.Status("Debate saved to " + path)
	_ = logger.Append(runlog.Event{
		Event: runlog.EventTranscriptSaved,
		RunID: runID,
		Path:  path,
		Turns: len(result.Transcript),
	})

	return nil
}

// ensureModels pulls any of the three models missing from the server
func ensureModels(ctx context.Context, client *ollama.Client, console *render.Console, installed []string, s runSettings) error {
	for _, model := range []string{s.ModelMachiavelli, s.ModelSocrates, s.ModelJudge} {
		if ollama.Available(model, installed) {
			continue
		}
		console.Status(fmt.Sprintf("Model %s not found. Pulling from the Ollama registry...", model))
		if err := client.Pull(ctx, model); err != nil {
			console.Error("Failed to pull model "+model, err.Error())
			return errReported
		}
	}
	return nil
}
