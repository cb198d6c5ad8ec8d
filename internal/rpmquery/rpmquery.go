// Package rpmquery extracts package identity (NEVRA) from RPM files.
package rpmquery

import (
	"fmt"
	"strings"
)

// PackageInfo identifies one package build by its NEVRA tuple.
type PackageInfo struct {
	Name    string
	Epoch   string // "0" when the package carries no epoch
	Version string
	Release string
	Arch    string
}

// EVR is the (Epoch, Version, Release) triple two kernel builds must
// share to be considered the same upstream kernel.
type EVR struct {
	Epoch   string
	Version string
	Release string
}

// EVR returns the package's (Epoch, Version, Release) triple.
func (p *PackageInfo) EVR() EVR {
	return EVR{Epoch: p.Epoch, Version: p.Version, Release: p.Release}
}

// VersionString renders the build identity as version-release.arch.epoch,
// the form used in mismatch messages.
func (p *PackageInfo) VersionString() string {
	return fmt.Sprintf("%s-%s.%s.%s", p.Version, p.Release, p.Arch, p.Epoch)
}

func (v EVR) String() string {
	return fmt.Sprintf("%s:%s-%s", v.Epoch, v.Version, v.Release)
}

// Inspector extracts the NEVRA tuple from a package file on disk.
type Inspector interface {
	Inspect(path string) (*PackageInfo, error)
}

// New returns the inspector backend selected by name.
func New(backend string) (Inspector, error) {
	switch backend {
	case "command":
		return &CommandInspector{}, nil
	case "header":
		return &HeaderInspector{}, nil
	default:
		return nil, fmt.Errorf("unknown inspector backend %q", backend)
	}
}

// normalizeEpoch maps the query tool's missing-epoch markers to "0".
func normalizeEpoch(epoch string) string {
	switch strings.TrimSpace(epoch) {
	case "", "(none)":
		return "0"
	default:
		return strings.TrimSpace(epoch)
	}
}
