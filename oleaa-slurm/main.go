// Command oleaa-slurm runs OLeAA over the input file selected by the SLURM
// array task ID.  Outside a batch system, set the task ID by hand:
//
//	SLURM_ARRAY_TASK_ID=0 oleaa-slurm --input <sample dir> --name <study> --config oleaa.tcl
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/decibelcooper/oleaaplot/internal/slurm"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var (
		cfg     slurm.Config
		verbose bool
	)

	cmd := &cobra.Command{
		Use:           "oleaa-slurm",
		Short:         "Run OLeAA for one SLURM array task",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync()

			err = run(cmd.Context(), cfg, log)
			if err != nil {
				log.Error("task failed", zap.Error(err))
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.Name, "name", "n", "", "name for this study set (e.g. bfield)")
	flags.StringVarP(&cfg.InputDir, "input", "i", "", "input directory of Delphes ROOT files")
	flags.StringVarP(&cfg.OutputDir, "output", "o", "./", "output directory to store results (top level)")
	flags.StringVarP(&cfg.ConfigFile, "config", "c", "", "configuration file (TCL)")
	flags.BoolVarP(&cfg.Force, "force", "f", false, "force-overwrite existing output")
	flags.StringVar(&cfg.Executable, "exe", "OLeAA.exe", "analysis executable")
	flags.StringVar(&cfg.ShareDir, "share", "share", "directory copied into each task directory")
	flags.BoolVarP(&verbose, "verbose", "v", false, "human-readable debug logging")
	for _, name := range []string{"name", "input", "config"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context, cfg slurm.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	id, err := slurm.TaskID(os.Getenv)
	if err != nil {
		return err
	}
	log.Info("task ID requested", zap.Int("task", id))

	job := &slurm.Job{
		Config: cfg,
		Exec:   slurm.Exec{Stdout: os.Stdout, Stderr: os.Stderr},
		Log:    log,
	}
	err = job.Run(ctx, id)
	if errors.Is(err, slurm.ErrTaskExists) {
		log.Warn("skipping task directory, it already exists; clean up before overwriting",
			zap.String("dir", cfg.TaskDir(id)))
		return nil
	}
	return err
}
