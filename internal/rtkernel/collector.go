package rtkernel

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/open-edge-platform/kernel-rt-check/internal/rpmquery"
	"github.com/open-edge-platform/kernel-rt-check/internal/utils/logger"
)

const rpmExtension = ".rpm"

// Collector scans a kernel-rt extension tree and verifies that every
// package in it was built from the same upstream kernel.
type Collector struct {
	// Dir is the kernel-rt package directory, walked recursively.
	Dir string
	// Inspector extracts the NEVRA from each package file.
	Inspector rpmquery.Inspector
}

// Collect walks Dir, inspects every *.rpm, strips the RT build tag
// from each Release, and checks that all packages share one
// (Epoch, Version, Release) triple. The reference triple is the first
// package seen in walk order; packages disagreeing with it are
// recorded in the returned report. A missing directory, a failed
// package query, or an unparseable Release is fatal.
func (c *Collector) Collect() (*rpmquery.PackageInfo, *logger.StringListReport, error) {
	log := logger.Logger()
	report := logger.NewStringListReport("kernel-rt package version mismatches")

	if _, err := os.Stat(c.Dir); err != nil {
		return nil, nil, fmt.Errorf("kernel-rt extension directory %s: %w", c.Dir, err)
	}

	var reference *rpmquery.PackageInfo
	err := filepath.WalkDir(c.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), rpmExtension) {
			return nil
		}

		pkg, err := c.Inspector.Inspect(path)
		if err != nil {
			return err
		}
		stripped, err := StripRTTag(pkg.Release)
		if err != nil {
			return fmt.Errorf("package %s: %w", pkg.Name, err)
		}
		pkg.Release = stripped
		log.Debugf("Found kernel-rt package %s (%s)", pkg.Name, pkg.EVR())

		if reference == nil {
			reference = pkg
			return nil
		}
		if pkg.EVR() != reference.EVR() {
			report.Append("kernel-rt package %s (%s) does not match %s (%s)",
				pkg.Name, pkg.EVR(), reference.Name, reference.EVR())
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("scanning %s: %w", c.Dir, err)
	}
	if reference == nil {
		return nil, nil, fmt.Errorf("no kernel-rt packages found under %s", c.Dir)
	}

	return reference, report, nil
}
