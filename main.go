package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/omkar-jagtap8443/Talk-genius/config"
	"github.com/omkar-jagtap8443/Talk-genius/orchestrator"
	"github.com/omkar-jagtap8443/Talk-genius/posture"
	"github.com/omkar-jagtap8443/Talk-genius/realtime"
	"github.com/omkar-jagtap8443/Talk-genius/report"
)

var version = "dev"

type app struct {
	configPath string
	logLevel   string

	conf *cfg.Root
	log  *logrus.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "talkgenius",
		Short:         "Score recorded presentation practice sessions",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "init" || cmd.Name() == "version" {
				return nil
			}
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default config/$CONFIG_ENV/config.yaml or ./config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override pipeline.log_level")

	root.AddCommand(
		a.scoreCmd(),
		a.reportCmd(),
		a.historyCmd(),
		a.replayCmd(),
		configCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) setup() error {
	// .env only supplies API keys; it is optional
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	conf, err := cfg.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		conf.Pipeline.LogLevel = a.logLevel
	}
	log, err := newLogger(conf.Pipeline, os.Stderr)
	if err != nil {
		return err
	}
	a.conf, a.log = conf, log
	return nil
}

func newLogger(p cfg.Pipeline, w io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)
	lvl, err := logrus.ParseLevel(p.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("pipeline.log_level: %w", err)
	}
	log.SetLevel(lvl)
	if p.LogFormat == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log, nil
}

func (a *app) openStore() (report.Store, error) {
	s := a.conf.Storage
	return report.Open(s.Driver, s.Path, s.Compress)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) scoreCmd() *cobra.Command {
	var in orchestrator.Input
	var topicFile string
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "score",
		Short: "Analyze a recording and save its report",
		RunE: func(cmd *cobra.Command, args []string) error {
			if in.TranscriptPath == "" && in.AudioPath == "" && in.PosturePath == "" {
				return errors.New("at least one of --transcript, --audio or --posture is required")
			}
			if topicFile != "" {
				b, err := os.ReadFile(topicFile)
				if err != nil {
					return fmt.Errorf("read topic file: %w", err)
				}
				in.TopicText = string(b)
			}
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := orchestrator.NewPipeline(a.conf, store, a.log).Run(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if asJSON {
				return printJSON(out, r)
			}
			fmt.Fprintf(out, "Session:  %s\n", r.SessionID)
			fmt.Fprintf(out, "Score:    %.1f (%s)\n", r.OverallScore.Total, r.OverallScore.PerformanceLevel)
			for _, rec := range r.OverallScore.Recommendations {
				fmt.Fprintf(out, "  - %s\n", rec)
			}
			if r.AIFeedback != "" {
				fmt.Fprintf(out, "\n%s\n", r.AIFeedback)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&in.TranscriptPath, "transcript", "", "transcript JSON with word timings")
	f.StringVar(&in.AudioPath, "audio", "", "audio file for the transcription service")
	f.StringVar(&in.PosturePath, "posture", "", "posture/eye-contact capture JSON")
	f.StringSliceVar(&in.Keywords, "keywords", nil, "topic keywords")
	f.StringVar(&topicFile, "topic-file", "", "text to extract topic keywords from")
	f.StringVar(&in.SessionID, "session-id", "", "session id (default: new UUID)")
	f.StringVar(&in.Title, "title", "", "report title")
	f.BoolVar(&asJSON, "json", false, "print the full report as JSON")
	return cmd
}

func (a *app) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report <session-id>",
		Short: "Print a saved report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			r, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), r)
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List saved reports, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			list, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(list) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No reports yet. Create one with 'talkgenius score'.")
				return nil
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "SESSION\tCREATED\tSCORE\tLEVEL\tTITLE")
			for _, s := range list {
				fmt.Fprintf(tw, "%s\t%s\t%.1f\t%s\t%s\n",
					s.SessionID, s.CreatedAt.Local().Format("2006-01-02 15:04"), s.Total, s.PerformanceLevel, s.Title)
			}
			return tw.Flush()
		},
	}
}

func (a *app) replayCmd() *cobra.Command {
	var posturePath, sessionID string
	var withAudio bool
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Feed a recorded capture stream through live feedback, one frame per second",
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := os.ReadFile(posturePath)
			if err != nil {
				return fmt.Errorf("read posture data: %w", err)
			}
			raw, err := posture.Decode(b)
			if err != nil {
				a.log.WithError(err).Warn("capture data partly unreadable")
			}
			svc := realtime.NewService(a.conf.RealtimeOptions(), a.log)
			rp, err := orchestrator.RunReplay(cmd.Context(), svc, sessionID, orchestrator.Frames(raw), withAudio)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rp)
		},
	}
	cmd.Flags().StringVar(&posturePath, "posture", "", "posture/eye-contact capture JSON")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "live session id (default: new ULID)")
	cmd.Flags().BoolVar(&withAudio, "audio", false, "simulate an audio chunk with every frame")
	_ = cmd.MarkFlagRequired("posture")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Manage configuration"}
	cmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "config.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := cfg.Write(path, cfg.Default()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	})
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "talkgenius %s\n", version)
		},
	}
}
