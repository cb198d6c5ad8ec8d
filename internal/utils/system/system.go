package system

import (
	"fmt"
	"strings"

	"github.com/open-edge-platform/kernel-rt-check/internal/utils/logger"
	"github.com/open-edge-platform/kernel-rt-check/internal/utils/shell"
)

// GetHostArch returns the host CPU architecture as reported by uname.
func GetHostArch() (string, error) {
	log := logger.Logger()

	output, err := shell.ExecCmd("uname -m", nil)
	if err != nil {
		log.Errorf("Failed to get host architecture: %v", err)
		return "", fmt.Errorf("failed to get host architecture: %w", err)
	}
	return strings.TrimSpace(output), nil
}
