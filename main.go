package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/samuelfneumann/sflearn/config"
	"github.com/samuelfneumann/sflearn/experiment"
	"github.com/samuelfneumann/sflearn/experiment/tracker"
	"github.com/samuelfneumann/sflearn/plot"
	"github.com/samuelfneumann/sflearn/utils/progressbar"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "sflearn",
	Short: "Linear successor feature return experiments",
	Long: `sflearn runs sweeps of linear successor feature return agents
and TD(lambda) baselines, logging one record per episode.`,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run every combination of a configuration sweep",
	RunE:  runSweep,
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Plot a metric of a log as learning curves",
	RunE:  runPlot,
}

func init() {
	runCmd.Flags().String("config", "conf/config.yaml", "Sweep configuration file")
	runCmd.Flags().String("log-dir", "", "Log directory, overriding logging.dir_path")
	runCmd.Flags().String("checkpoint-dir", "", "Checkpoint directory, overriding training.checkpoint_dir")
	runCmd.Flags().String("log-level", "info", "Log level (debug, info, warn, error)")
	runCmd.Flags().Bool("progress", true, "Display a progress bar over runs")

	plotCmd.Flags().String("log", tracker.LogFile, "Log file to plot")
	plotCmd.Flags().String("metric", "cumulative_reward", "Metric to plot")
	plotCmd.Flags().String("out", "curves.html", "Output HTML file")

	// Bind flags to viper for environment variable support
	viper.BindPFlags(runCmd.Flags())
	viper.BindPFlags(plotCmd.Flags())
	viper.SetEnvPrefix("SFLEARN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(runCmd, plotCmd)
}

func newLogger(level string) (zerolog.Logger, error) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %w", level,
			err)
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(l).With().Timestamp().Logger(), nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(viper.GetString("log-level"))
	if err != nil {
		return err
	}

	tree, err := config.Load(viper.GetString("config"))
	if err != nil {
		return err
	}

	// The log is shared by all runs, so it is opened before expansion
	dir := viper.GetString("log-dir")
	if dir == "" {
		dir = experiment.LogDir(tree)
	}

	var pipe *tracker.Pipe
	if dir != "" {
		var f *os.File
		pipe, f, err = tracker.Open(dir)
		if err != nil {
			return err
		}
		defer f.Close()
		logger.Info().Str("dir", dir).Msg("logging to file")
	} else {
		pipe = tracker.NewPipe(os.Stdout, false)
	}
	if err := pipe.WriteHeader(); err != nil {
		return err
	}

	s := experiment.Sweep{
		Tracker:       pipe,
		Logger:        logger,
		CheckpointDir: viper.GetString("checkpoint-dir"),
	}
	if viper.GetBool("progress") {
		bar := progressbar.NewManualProgressBar(os.Stderr, 40,
			experiment.Len(tree))
		defer bar.Close()
		s.Progress = bar
	}

	return s.Run(tree)
}

func runPlot(cmd *cobra.Command, args []string) error {
	rows, err := plot.ReadLog(viper.GetString("log"))
	if err != nil {
		return err
	}

	metric := viper.GetString("metric")
	curves, err := plot.Curves(rows, metric)
	if err != nil {
		return err
	}

	f, err := os.Create(viper.GetString("out"))
	if err != nil {
		return err
	}
	defer f.Close()

	return plot.Render(f, metric, curves)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
