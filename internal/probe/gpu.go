package probe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/hostpulse/hostpulse/internal/model"
)

// gpuQueryTimeout bounds the external nvidia-smi invocation. A wedged
// driver must never stall the refresh loop indefinitely.
const gpuQueryTimeout = 5 * time.Second

// GPUs queries nvidia-smi for per-device utilization, memory, and
// temperature. A missing binary or zero devices means no GPU hardware and
// reports ErrUnavailable; a timeout or non-zero exit is transient.
func GPUs(ctx context.Context) ([]model.GPU, error) {
	ctx, cancel := context.WithTimeout(ctx, gpuQueryTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu=name,utilization.gpu,memory.used,memory.total,temperature.gpu",
		"--format=csv,noheader,nounits").Output()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return nil, ErrUnavailable
		}
		if ctx.Err() != nil {
			return nil, fmt.Errorf("nvidia-smi: %w", ctx.Err())
		}
		return nil, fmt.Errorf("nvidia-smi: %w", err)
	}
	gpus := parseGPUCSV(string(out))
	if len(gpus) == 0 {
		return nil, ErrUnavailable
	}
	return gpus, nil
}

// parseGPUCSV decodes nvidia-smi csv,noheader,nounits output. Device ids
// follow line order, matching nvidia-smi's device enumeration.
func parseGPUCSV(out string) []model.GPU {
	var gpus []model.GPU
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, ",")
		if len(parts) < 5 {
			continue
		}
		gpus = append(gpus, model.GPU{
			ID:            len(gpus),
			Name:          strings.TrimSpace(parts[0]),
			Utilization:   parseFloat(parts[1]),
			MemoryUsedMB:  parseFloat(parts[2]),
			MemoryTotalMB: parseFloat(parts[3]),
			TemperatureC:  parseFloat(parts[4]),
		})
	}
	return gpus
}

func parseFloat(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "%")
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
