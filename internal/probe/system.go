package probe

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"

	"github.com/hostpulse/hostpulse/internal/model"
)

// Memory reads RAM and swap usage.
func Memory() (model.Memory, model.Swap, error) {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return model.Memory{}, model.Swap{}, fmt.Errorf("virtual memory: %w", err)
	}
	sw, err := mem.SwapMemory()
	if err != nil {
		return model.Memory{}, model.Swap{}, fmt.Errorf("swap memory: %w", err)
	}
	return model.Memory{
			Total:     vm.Total,
			Available: vm.Available,
			Used:      vm.Used,
			Free:      vm.Free,
			Percent:   vm.UsedPercent,
		}, model.Swap{
			Total:   sw.Total,
			Used:    sw.Used,
			Free:    sw.Free,
			Percent: sw.UsedPercent,
		}, nil
}

// Disk reads usage of the filesystem at path plus machine-wide I/O counters.
// Missing I/O counters (some container environments) leave IO nil rather
// than failing the probe.
func Disk(path string) (model.Disk, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return model.Disk{}, fmt.Errorf("disk usage %s: %w", path, err)
	}
	d := model.Disk{
		Total:   usage.Total,
		Used:    usage.Used,
		Free:    usage.Free,
		Percent: usage.UsedPercent,
	}
	counters, err := disk.IOCounters()
	if err == nil && len(counters) > 0 {
		io := &model.DiskIO{}
		for _, st := range counters {
			io.ReadCount += st.ReadCount
			io.WriteCount += st.WriteCount
			io.ReadBytes += st.ReadBytes
			io.WriteBytes += st.WriteBytes
		}
		d.IO = io
	}
	return d, nil
}

// Network reads cumulative interface counters summed across all NICs.
func Network() (model.Network, error) {
	counters, err := net.IOCounters(false)
	if err != nil {
		return model.Network{}, fmt.Errorf("net counters: %w", err)
	}
	if len(counters) == 0 {
		return model.Network{}, fmt.Errorf("net counters: empty result")
	}
	c := counters[0]
	return model.Network{
		BytesSent:   c.BytesSent,
		BytesRecv:   c.BytesRecv,
		PacketsSent: c.PacketsSent,
		PacketsRecv: c.PacketsRecv,
	}, nil
}

// System gathers the static host descriptors included in every snapshot.
func System() (model.SystemInfo, error) {
	info, err := host.Info()
	if err != nil {
		return model.SystemInfo{}, fmt.Errorf("host info: %w", err)
	}
	sys := model.SystemInfo{
		Platform:     info.Platform + " " + info.PlatformVersion,
		Architecture: info.KernelArch,
		BootTime:     time.Unix(int64(info.BootTime), 0),
	}
	if cpus, err := cpu.Info(); err == nil && len(cpus) > 0 {
		sys.Processor = cpus[0].ModelName
	}
	return sys, nil
}
