package rpmquery

import (
	"fmt"
	"os"
	"strings"

	"github.com/open-edge-platform/kernel-rt-check/internal/utils/shell"
)

const (
	rpmProgram  = "rpm"
	queryFormat = "%{NAME}|%{EPOCH}|%{VERSION}|%{RELEASE}|%{ARCH}"
)

// CommandInspector queries package files through the rpm program.
type CommandInspector struct{}

// Inspect runs `rpm -qp` with a pipe-delimited query format and parses
// the NEVRA fields out of its output. A missing rpm program, a missing
// file, or a non-zero exit all propagate as errors.
func (i *CommandInspector) Inspect(path string) (*PackageInfo, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("package file %s: %w", path, err)
	}
	if !shell.IsCommandExist(rpmProgram) {
		return nil, fmt.Errorf("%s command not found on host", rpmProgram)
	}

	cmdStr := fmt.Sprintf("%s -qp --qf '%s' %q", rpmProgram, queryFormat, path)
	output, err := shell.ExecCmdOutput(cmdStr, nil)
	if err != nil {
		return nil, fmt.Errorf("querying package %s: %w", path, err)
	}

	return parseQueryOutput(output)
}

// parseQueryOutput splits a NAME|EPOCH|VERSION|RELEASE|ARCH line into
// a PackageInfo, normalizing a missing epoch to "0".
func parseQueryOutput(output string) (*PackageInfo, error) {
	fields := strings.Split(strings.TrimSpace(output), "|")
	if len(fields) != 5 {
		return nil, fmt.Errorf("unexpected query output %q: want 5 fields, got %d",
			strings.TrimSpace(output), len(fields))
	}

	return &PackageInfo{
		Name:    fields[0],
		Epoch:   normalizeEpoch(fields[1]),
		Version: fields[2],
		Release: fields[3],
		Arch:    fields[4],
	}, nil
}
