package systeminfo

import (
	"runtime"
	"time"

	"vakta/config"
	"vakta/logger"
	"vakta/version"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// SystemInfo is the host context embedded in the session header of every
// output file. It describes where a scan ran, not what was found.
type SystemInfo struct {
	Hostname        string `json:"hostname,omitempty"`
	OS              string `json:"os,omitempty"`
	Platform        string `json:"platform,omitempty"`
	PlatformVersion string `json:"platform_version,omitempty"`
	KernelVersion   string `json:"kernel_version,omitempty"`
	Arch            string `json:"arch"`
	CPUCount        int    `json:"cpu_count,omitempty"`
	CPUModel        string `json:"cpu_model,omitempty"`
	TotalMemory     uint64 `json:"total_memory,omitempty"`
	UptimeSeconds   uint64 `json:"uptime_seconds,omitempty"`
	ScannerVersion  string `json:"scanner_version"`
	CollectedAt     string `json:"collected_at"`
}

// Collect gathers the host summary. Every probe is best-effort; a host
// that refuses a detail still produces a usable header.
func Collect(cfg *config.Config) *SystemInfo {
	info := &SystemInfo{
		Arch:           runtime.GOARCH,
		ScannerVersion: version.Version,
		CollectedAt:    time.Now().UTC().Format(time.RFC3339),
	}
	if cfg != nil && !cfg.CollectSystemInfo {
		return info
	}

	if hostInfo, err := host.Info(); err != nil {
		logger.Warnf("Failed to gather host info: %v", err)
	} else {
		info.Hostname = hostInfo.Hostname
		info.OS = hostInfo.OS
		info.Platform = hostInfo.Platform
		info.PlatformVersion = hostInfo.PlatformVersion
		info.KernelVersion = hostInfo.KernelVersion
		info.UptimeSeconds = hostInfo.Uptime
	}

	if count, err := cpu.Counts(true); err != nil {
		logger.Warnf("Failed to gather CPU count: %v", err)
	} else {
		info.CPUCount = count
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		info.CPUModel = cpus[0].ModelName
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		logger.Warnf("Failed to gather memory info: %v", err)
	} else {
		info.TotalMemory = vm.Total
	}

	return info
}
