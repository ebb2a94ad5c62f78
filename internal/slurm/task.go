// Package slurm stages and runs one OLeAA job for a SLURM array task.
package slurm

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// TaskIDEnv is the environment variable holding the array task index.
const TaskIDEnv = "SLURM_ARRAY_TASK_ID"

var (
	ErrNoTaskID       = errors.New("slurm: " + TaskIDEnv + " is not set")
	ErrNoInputFiles   = errors.New("slurm: no ROOT files in input directory")
	ErrNoMatchingFile = errors.New("slurm: no input file for task")
	ErrTaskExists     = errors.New("slurm: task directory already exists")
)

// TaskID reads the array task index through getenv.
func TaskID(getenv func(string) string) (int, error) {
	raw := strings.TrimSpace(getenv(TaskIDEnv))
	if raw == "" {
		return 0, ErrNoTaskID
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("slurm: invalid %s %q: %w", TaskIDEnv, raw, err)
	}
	if id < 0 {
		return 0, fmt.Errorf("slurm: invalid %s %d", TaskIDEnv, id)
	}
	return id, nil
}

// InputFiles lists the ROOT files one directory below dir, sorted.
func InputFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*", "*.root"))
	if err != nil {
		return nil, fmt.Errorf("slurm: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w %s", ErrNoInputFiles, dir)
	}
	sort.Strings(files)
	return files, nil
}

// FindTaskFile returns the absolute path of the first file named out.root
// inside a directory named after id.
func FindTaskFile(files []string, id int) (string, error) {
	name := strconv.Itoa(id)
	for _, file := range files {
		if filepath.Base(file) == "out.root" && filepath.Base(filepath.Dir(file)) == name {
			return filepath.Abs(file)
		}
	}
	return "", fmt.Errorf("%w %d", ErrNoMatchingFile, id)
}
