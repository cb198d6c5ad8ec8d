package rtkernel

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/open-edge-platform/kernel-rt-check/internal/rpmquery"
)

// fakeInspector resolves packages by base filename.
type fakeInspector struct {
	pkgs map[string]*rpmquery.PackageInfo
	errs map[string]error
}

func (f *fakeInspector) Inspect(path string) (*rpmquery.PackageInfo, error) {
	name := filepath.Base(path)
	if err, ok := f.errs[name]; ok {
		return nil, err
	}
	if pkg, ok := f.pkgs[name]; ok {
		// Copy so the collector's in-place Release rewrite does not
		// leak between walk entries.
		clone := *pkg
		return &clone, nil
	}
	return nil, fmt.Errorf("unexpected package %s", path)
}

func rtPkg(name, epoch, version, release string) *rpmquery.PackageInfo {
	return &rpmquery.PackageInfo{
		Name:    name,
		Epoch:   epoch,
		Version: version,
		Release: release,
		Arch:    "x86_64",
	}
}

// writeRTTree creates empty *.rpm fixtures under dir, nested one level
// to exercise the recursive walk.
func writeRTTree(t *testing.T, dir string, names ...string) {
	t.Helper()
	sub := filepath.Join(dir, "x86_64")
	if err := os.MkdirAll(sub, 0755); err != nil {
		t.Fatalf("creating fixture dir: %v", err)
	}
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(sub, name), nil, 0644); err != nil {
			t.Fatalf("creating fixture %s: %v", name, err)
		}
	}
}

func TestCollectorConsistentPackages(t *testing.T) {
	dir := t.TempDir()
	writeRTTree(t, dir,
		"kernel-rt-core-5.14.0-553.rt7.el9.x86_64.rpm",
		"kernel-rt-modules-5.14.0-553.rt7.el9.x86_64.rpm",
		"README.md", // ignored, not a package
	)

	collector := &Collector{
		Dir: dir,
		Inspector: &fakeInspector{pkgs: map[string]*rpmquery.PackageInfo{
			"kernel-rt-core-5.14.0-553.rt7.el9.x86_64.rpm":    rtPkg("kernel-rt-core", "0", "5.14.0", "553.rt7.el9"),
			"kernel-rt-modules-5.14.0-553.rt7.el9.x86_64.rpm": rtPkg("kernel-rt-modules", "0", "5.14.0", "553.rt7.el9"),
		}},
	}

	rt, report, err := collector.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Empty() {
		t.Fatalf("expected no mismatches, got %v", report.Items)
	}
	want := rpmquery.EVR{Epoch: "0", Version: "5.14.0", Release: "553.el9"}
	if rt.EVR() != want {
		t.Fatalf("expected normalized triple %v, got %v", want, rt.EVR())
	}
}

func TestCollectorMismatchedPackage(t *testing.T) {
	dir := t.TempDir()
	writeRTTree(t, dir,
		"kernel-rt-core-5.14.0-553.rt7.el9.x86_64.rpm",
		"kernel-rt-devel-5.14.0-554.rt7.el9.x86_64.rpm",
	)

	collector := &Collector{
		Dir: dir,
		Inspector: &fakeInspector{pkgs: map[string]*rpmquery.PackageInfo{
			"kernel-rt-core-5.14.0-553.rt7.el9.x86_64.rpm":  rtPkg("kernel-rt-core", "0", "5.14.0", "553.rt7.el9"),
			"kernel-rt-devel-5.14.0-554.rt7.el9.x86_64.rpm": rtPkg("kernel-rt-devel", "0", "5.14.0", "554.rt7.el9"),
		}},
	}

	_, report, err := collector.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(report.Items) != 1 {
		t.Fatalf("expected 1 mismatch, got %d: %v", len(report.Items), report.Items)
	}
	if !strings.Contains(report.Items[0], "kernel-rt-devel") {
		t.Fatalf("mismatch message should name the differing package: %s", report.Items[0])
	}
}

func TestCollectorDifferingRTTagsStillMatch(t *testing.T) {
	dir := t.TempDir()
	writeRTTree(t, dir,
		"kernel-rt-core.rpm",
		"kernel-rt-kvm.rpm",
	)

	collector := &Collector{
		Dir: dir,
		Inspector: &fakeInspector{pkgs: map[string]*rpmquery.PackageInfo{
			"kernel-rt-core.rpm": rtPkg("kernel-rt-core", "0", "5.14.0", "553.rt7.el9"),
			"kernel-rt-kvm.rpm":  rtPkg("kernel-rt-kvm", "0", "5.14.0", "553.rt21.el9"),
		}},
	}

	_, report, err := collector.Collect()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !report.Empty() {
		t.Fatalf("differing rt build tags must not mismatch, got %v", report.Items)
	}
}

func TestCollectorMissingDirectoryIsFatal(t *testing.T) {
	collector := &Collector{
		Dir:       filepath.Join(t.TempDir(), "does-not-exist"),
		Inspector: &fakeInspector{},
	}
	if _, _, err := collector.Collect(); err == nil {
		t.Fatal("expected error for missing kernel-rt directory")
	}
}

func TestCollectorEmptyTreeIsFatal(t *testing.T) {
	collector := &Collector{Dir: t.TempDir(), Inspector: &fakeInspector{}}
	if _, _, err := collector.Collect(); err == nil {
		t.Fatal("expected error when no kernel-rt packages are found")
	}
}

func TestCollectorInspectorFailureIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeRTTree(t, dir, "kernel-rt-core.rpm")

	queryErr := errors.New("rpm command not found on host")
	collector := &Collector{
		Dir:       dir,
		Inspector: &fakeInspector{errs: map[string]error{"kernel-rt-core.rpm": queryErr}},
	}
	_, _, err := collector.Collect()
	if err == nil || !errors.Is(err, queryErr) {
		t.Fatalf("expected inspector failure to propagate, got %v", err)
	}
}

func TestCollectorUnparseableReleaseIsFatal(t *testing.T) {
	dir := t.TempDir()
	writeRTTree(t, dir, "kernel-rt-core.rpm")

	collector := &Collector{
		Dir: dir,
		Inspector: &fakeInspector{pkgs: map[string]*rpmquery.PackageInfo{
			"kernel-rt-core.rpm": rtPkg("kernel-rt-core", "0", "5.14.0", "553.el9"),
		}},
	}
	if _, _, err := collector.Collect(); err == nil {
		t.Fatal("expected error for release without rt tag")
	}
}
