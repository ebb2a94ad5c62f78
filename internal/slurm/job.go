package slurm

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

// Config describes one study submitted as a job array.
type Config struct {
	// Name of the study; task directories go under OutputDir/Name.
	Name string
	// InputDir holds one subdirectory per generated sample chunk.
	InputDir  string
	OutputDir string
	// ConfigFile is the OLeAA TCL configuration.
	ConfigFile string
	// ShareDir is copied into every task directory.
	ShareDir string
	// Executable is the analysis binary, looked up in PATH when bare.
	Executable string
	Force      bool
}

func (c Config) Validate() error {
	switch {
	case c.Name == "":
		return fmt.Errorf("slurm: study name is required")
	case c.InputDir == "":
		return fmt.Errorf("slurm: input directory is required")
	case c.ConfigFile == "":
		return fmt.Errorf("slurm: configuration file is required")
	case c.Executable == "":
		return fmt.Errorf("slurm: executable is required")
	}
	return nil
}

// TaskDir is the working directory of task id.
func (c Config) TaskDir(id int) string {
	return filepath.Join(c.OutputDir, c.Name, strconv.Itoa(id))
}

// Executor runs a command in a directory.
type Executor interface {
	Run(ctx context.Context, dir, name string, args ...string) error
}

// Exec runs commands as child processes, passing their output through.
type Exec struct {
	Stdout, Stderr io.Writer
}

func (e Exec) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr
	return cmd.Run()
}

// Job runs a single array task.
type Job struct {
	Config Config
	Exec   Executor
	Log    *zap.Logger
}

// Run resolves the input file of task id, stages the task directory and
// runs the analysis in it.  It returns ErrTaskExists without running when
// the task directory is already there and Force is unset.
func (j *Job) Run(ctx context.Context, id int) error {
	if err := j.Config.Validate(); err != nil {
		return err
	}
	log := j.Log.With(zap.Int("task", id), zap.String("study", j.Config.Name))

	files, err := InputFiles(j.Config.InputDir)
	if err != nil {
		return err
	}
	log.Info("input directory scanned", zap.Int("files", len(files)))

	input, err := FindTaskFile(files, id)
	if err != nil {
		return err
	}
	log.Info("processing", zap.String("input", input))

	dir, err := j.Stage(id)
	if err != nil {
		return err
	}

	args := []string{
		"--input_dir", input,
		"--output_file", "out.root",
		"--config_file", filepath.Base(j.Config.ConfigFile),
	}
	log.Info("running analysis", zap.String("dir", dir), zap.String("exe", j.Config.Executable), zap.Strings("args", args))
	if err := j.Exec.Run(ctx, dir, j.Config.Executable, args...); err != nil {
		return fmt.Errorf("slurm: task %d: %s: %w", id, j.Config.Executable, err)
	}
	log.Info("analysis done", zap.String("output", filepath.Join(dir, "out.root")))
	return nil
}

// Stage creates the task directory and copies the share directory and the
// configuration file into it.
func (j *Job) Stage(id int) (string, error) {
	dir := j.Config.TaskDir(id)
	if _, err := os.Stat(dir); err == nil && !j.Config.Force {
		return dir, fmt.Errorf("%w: %s", ErrTaskExists, dir)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return dir, fmt.Errorf("slurm: %w", err)
	}

	if j.Config.ShareDir != "" {
		if _, err := os.Stat(j.Config.ShareDir); err == nil {
			dst := filepath.Join(dir, filepath.Base(j.Config.ShareDir))
			if err := copyTree(j.Config.ShareDir, dst); err != nil {
				return dir, fmt.Errorf("slurm: copying %s: %w", j.Config.ShareDir, err)
			}
		} else {
			j.Log.Warn("share directory missing, not copied", zap.String("share", j.Config.ShareDir))
		}
	}

	dst := filepath.Join(dir, filepath.Base(j.Config.ConfigFile))
	if err := copyFile(j.Config.ConfigFile, dst); err != nil {
		return dir, fmt.Errorf("slurm: copying %s: %w", j.Config.ConfigFile, err)
	}
	return dir, nil
}

func copyTree(src, dst string) error {
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			info, err := d.Info()
			if err != nil {
				return err
			}
			return os.MkdirAll(target, info.Mode().Perm())
		case d.Type()&fs.ModeSymlink != 0:
			link, err := os.Readlink(path)
			if err != nil {
				return err
			}
			os.Remove(target)
			return os.Symlink(link, target)
		default:
			return copyFile(path, target)
		}
	})
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}
