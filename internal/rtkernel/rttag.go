package rtkernel

import (
	"fmt"
	"strings"
)

const (
	rtMarker = ".rt"
	elMarker = ".el"
)

// StripRTTag removes the real-time build tag from a kernel-rt Release
// string so it can be compared against the default kernel's Release:
// the segment from the first ".rt" marker up to, but not including,
// the following ".el" marker is spliced out ("123.rt7.el9" becomes
// "123.el9"). A Release missing either marker is an error rather than
// being passed through mangled.
func StripRTTag(release string) (string, error) {
	rtIdx := strings.Index(release, rtMarker)
	if rtIdx < 0 {
		return "", fmt.Errorf("release %q has no %q marker", release, rtMarker)
	}
	elOff := strings.Index(release[rtIdx:], elMarker)
	if elOff < 0 {
		return "", fmt.Errorf("release %q has a %q tag with no following %q marker",
			release, rtMarker, elMarker)
	}
	return release[:rtIdx] + release[rtIdx+elOff:], nil
}
