// Package rtkernel verifies that a composed image's default kernel and
// its kernel-rt extension are built from the same upstream kernel.
package rtkernel

import (
	"fmt"

	"github.com/open-edge-platform/kernel-rt-check/internal/config"
	"github.com/open-edge-platform/kernel-rt-check/internal/manifest"
	"github.com/open-edge-platform/kernel-rt-check/internal/rpmquery"
	"github.com/open-edge-platform/kernel-rt-check/internal/utils/logger"
	"github.com/open-edge-platform/kernel-rt-check/internal/utils/slice"
	"github.com/open-edge-platform/kernel-rt-check/internal/utils/system"
)

// Seams for tests.
var (
	hostArch     = system.GetHostArch
	newInspector = rpmquery.New
)

// Run executes the full consistency check for one workspace:
// architecture gate, kernel-rt collection, and the cross-check against
// the build manifest. Structural failures return an error regardless
// of cfg.IgnoreMismatch; collected mismatches return an error only
// when the ignore flag is unset, and are printed either way.
func Run(cfg *config.Config) error {
	log := logger.Logger()

	arch, err := hostArch()
	if err != nil {
		return err
	}
	if !slice.Contains(cfg.SupportedArches, arch) {
		log.Infof("Architecture %s has no kernel-rt extension, skipping check", arch)
		return nil
	}

	inspector, err := newInspector(cfg.Inspector)
	if err != nil {
		return err
	}

	collector := &Collector{Dir: cfg.RTPackageDir(), Inspector: inspector}
	rt, rtReport, err := collector.Collect()
	if err != nil {
		return err
	}
	if err := applyErrorPolicy(cfg, rtReport); err != nil {
		return err
	}

	entries, err := manifest.LoadPackageList(cfg.ManifestPath(arch))
	if err != nil {
		return err
	}

	if err := applyErrorPolicy(cfg, CrossCheck(entries, rt)); err != nil {
		return err
	}

	// Confirmation goes to stdout, next to any mismatch batches.
	fmt.Printf("kernel and kernel-rt versions match: %s\n", rt.VersionString())
	return nil
}

// applyErrorPolicy prints a non-empty report as a batch and decides
// whether it fails the run.
func applyErrorPolicy(cfg *config.Config, report *logger.StringListReport) error {
	if report.Empty() {
		return nil
	}
	log := logger.Logger()

	report.Print()
	if cfg.ReportDir != "" {
		if err := report.WriteToFile(cfg.ReportDir); err != nil {
			log.Warnf("Failed to persist mismatch report: %v", err)
		}
	}

	if cfg.IgnoreMismatch {
		log.Infof("Ignoring %d errors, %s is set", len(report.Items), config.IgnoreMismatchEnv)
		return nil
	}
	return fmt.Errorf("%s: %d errors", report.Title, len(report.Items))
}
