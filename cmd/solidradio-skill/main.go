package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/steelegbr/solidradioalexa/internal/config"
	"github.com/steelegbr/solidradioalexa/internal/liner"
	"github.com/steelegbr/solidradioalexa/internal/musicstats"
	"github.com/steelegbr/solidradioalexa/internal/server"
	"github.com/steelegbr/solidradioalexa/internal/skill"
	"github.com/steelegbr/solidradioalexa/internal/types"
)

var (
	rootCmd = &cobra.Command{
		Use:          "solidradio-skill",
		Short:        "Voice skill backend for a MusicStats radio station",
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         runServe,
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the skill endpoint",
		Args:  cobra.NoArgs,
		RunE:  runServe,
	}

	checkCmd = &cobra.Command{
		Use:   "check [intent]",
		Short: "Answer one intent against the live content API and print the response",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCheck,
	}
)

func init() {
	rootCmd.AddCommand(serveCmd, checkCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, configures the process logger and builds the
// request dispatcher.
func setup() (config.Config, *skill.Dispatcher, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}
	if err := setupLog(cfg); err != nil {
		return config.Config{}, nil, err
	}

	api := musicstats.NewClient(cfg.ServerURL(), cfg.Token)
	player := skill.NewPlayer(api, liner.NewSelector(), cfg.Station, cfg.MetadataToken)
	return cfg, skill.NewDispatcher(player, cfg.StationName), nil
}

func setupLog(cfg config.Config) error {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	log.SetLevel(level)
	log.SetReportTimestamp(true)

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		log.SetFormatter(log.TextFormatter)
	case "json":
		log.SetFormatter(log.JSONFormatter)
	case "logfmt":
		log.SetFormatter(log.LogfmtFormatter)
	default:
		return fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, dispatcher, err := setup()
	if err != nil {
		return err
	}
	log.Info("starting skill", "station", cfg.Station, "upstream", cfg.ServerURL(), "skill_id_check", cfg.SkillID != "")
	return server.NewServer(cfg, dispatcher).Run()
}

func runCheck(cmd *cobra.Command, args []string) error {
	_, dispatcher, err := setup()
	if err != nil {
		return err
	}

	intent := skill.IntentNowPlaying
	if len(args) == 1 {
		intent = args[0]
	}
	env := types.RequestEnvelope{
		Version: "1.0",
		Request: types.Request{
			Type:      types.RequestIntent,
			RequestID: "check",
			Intent:    &types.Intent{Name: intent},
		},
	}

	ctx := log.WithContext(cmd.Context(), log.Default().With("request_id", "check"))
	resp := dispatcher.Dispatch(ctx, env)

	out, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
