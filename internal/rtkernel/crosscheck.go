package rtkernel

import (
	"strings"

	"github.com/open-edge-platform/kernel-rt-check/internal/manifest"
	"github.com/open-edge-platform/kernel-rt-check/internal/rpmquery"
	"github.com/open-edge-platform/kernel-rt-check/internal/utils/logger"
)

// CrossCheck compares every kernel* entry of the default build's
// package list against the normalized kernel-rt build identity. Each
// disagreeing entry is recorded with both identities rendered as
// version-release.arch.epoch.
func CrossCheck(entries []manifest.Entry, rt *rpmquery.PackageInfo) *logger.StringListReport {
	log := logger.Logger()
	report := logger.NewStringListReport("kernel/kernel-rt version mismatches")

	for i := range entries {
		entry := &entries[i]
		if !strings.HasPrefix(entry.Name, "kernel") {
			continue
		}
		log.Debugf("Checking default kernel package %s (%s)", entry.Name, entry.EVR())
		if entry.EVR() != rt.EVR() {
			report.Append("Default kernel package %s version %s does not match kernel-rt version %s",
				entry.Name, entry.VersionString(), rt.VersionString())
		}
	}
	return report
}
