// Package hostinfo answers the two environment questions the legacy API
// exposed: which CPU vendor the host reports, and whether the process
// appears to run under a hypervisor.
package hostinfo

import (
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// cpuinfoPath is swapped by tests.
var cpuinfoPath = "/proc/cpuinfo"

// CPUVendor returns the CPU vendor string reported by the host, or "" when
// it cannot be determined.
func CPUVendor() string {
	if runtime.GOOS == "darwin" {
		out, err := exec.Command("sysctl", "-n", "machdep.cpu.brand_string").Output()
		if err != nil {
			return ""
		}
		return strings.TrimSpace(string(out))
	}
	return cpuinfoField("vendor_id")
}

// IsVirtualMachine reports whether the host looks like a virtual machine.
// On Linux this checks the hypervisor CPU flag; elsewhere it returns false
// rather than guessing.
func IsVirtualMachine() bool {
	if runtime.GOOS != "linux" {
		return false
	}
	flags := cpuinfoField("flags")
	for _, f := range strings.Fields(flags) {
		if f == "hypervisor" {
			return true
		}
	}
	return false
}

// cpuinfoField returns the value of the first cpuinfo line with the given
// key, "" if absent or unreadable.
func cpuinfoField(key string) string {
	data, err := os.ReadFile(cpuinfoPath)
	if err != nil {
		return ""
	}
	for _, line := range strings.Split(string(data), "\n") {
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(k) == key {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
