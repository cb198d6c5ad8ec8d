package rpmquery

import (
	"fmt"
	"os"

	rpmutils "github.com/sassoftware/go-rpmutils"
)

// HeaderInspector reads the NEVRA directly from the RPM lead/header,
// with no external tooling on the host.
type HeaderInspector struct{}

func (i *HeaderInspector) Inspect(path string) (*PackageInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("package file %s: %w", path, err)
	}
	defer f.Close()

	rpm, err := rpmutils.ReadRpm(f)
	if err != nil {
		return nil, fmt.Errorf("reading rpm header of %s: %w", path, err)
	}

	nevra, err := rpm.Header.GetNEVRA()
	if err != nil {
		return nil, fmt.Errorf("extracting NEVRA from %s: %w", path, err)
	}

	return &PackageInfo{
		Name:    nevra.Name,
		Epoch:   normalizeEpoch(nevra.Epoch),
		Version: nevra.Version,
		Release: nevra.Release,
		Arch:    nevra.Arch,
	}, nil
}
