package shell

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"

	"github.com/open-edge-platform/kernel-rt-check/internal/utils/logger"
)

// getShell returns the preferred shell, falling back to /bin/sh if bash is not available
func getShell() string {
	shells := []string{"/bin/bash", "/usr/bin/bash", "/bin/sh"}
	for _, shell := range shells {
		if _, err := os.Stat(shell); err == nil {
			return shell
		}
	}
	return "/bin/sh" // fallback
}

// IsCommandExist checks if a command exists on the host
func IsCommandExist(cmd string) bool {
	cmdStr := "command -v " + cmd

	shell := getShell()
	output, _ := exec.Command(shell, "-c", cmdStr).Output()
	output = bytes.TrimSpace(output)
	return len(output) != 0
}

// ExecCmdOutput executes a command and returns its stdout only.
// Stderr is logged at debug level, which keeps signature warnings from
// query tools out of parseable output.
func ExecCmdOutput(cmdStr string, envVal []string) (string, error) {
	log := logger.Logger()
	log.Debugf("Exec: [" + cmdStr + "]")

	shell := getShell()
	cmd := exec.Command(shell, "-c", cmdStr)
	if len(envVal) > 0 {
		cmd.Env = append(os.Environ(), envVal...)
	}
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if stderr.Len() > 0 {
		log.Debugf(stderr.String())
	}
	if err != nil {
		return string(output), fmt.Errorf("failed to exec %s: %w", cmdStr, err)
	}
	return string(output), nil
}

// ExecCmd executes a command and returns its combined output. The call
// blocks until the command exits; there is no timeout.
func ExecCmd(cmdStr string, envVal []string) (string, error) {
	log := logger.Logger()
	log.Debugf("Exec: [" + cmdStr + "]")

	shell := getShell()
	cmd := exec.Command(shell, "-c", cmdStr)
	if len(envVal) > 0 {
		cmd.Env = append(os.Environ(), envVal...)
	}
	output, err := cmd.CombinedOutput()
	outputStr := string(output)

	if err != nil {
		if outputStr != "" {
			log.Infof(outputStr)
		}
		return outputStr, fmt.Errorf("failed to exec %s: %w", cmdStr, err)
	}
	if outputStr != "" {
		log.Debugf(outputStr)
	}
	return outputStr, nil
}
