package demo

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"microbus/component"
	"microbus/logger"
)

// Stats carries a single process resource sample.
type Stats struct {
	CPU   float64
	MemMB float64
}

type systemStats struct {
	proc *process.Process
}

// NewSystemStats declares a Loop active polling this process's own
// CPU/RSS via gopsutil and publishing Stats on an interval.
func NewSystemStats() component.Spec {
	b := component.NewBuilder("system-stats", func() *systemStats { return &systemStats{} })

	component.Init(b, func(s *systemStats) component.Return {
		p, err := process.NewProcess(int32(os.Getpid()))
		if err != nil {
			return component.Err(err)
		}

		s.proc = p

		return component.Unit()
	})

	component.Active(b, func(s *systemStats) component.Return {
		time.Sleep(50 * time.Millisecond)

		cpu, err := s.proc.CPUPercent()
		if err != nil {
			return component.Err(err)
		}

		mem, err := s.proc.MemoryInfo()
		if err != nil {
			return component.Err(err)
		}

		return component.Value(Stats{
			CPU:   cpu,
			MemMB: float64(mem.RSS) / 1024 / 1024,
		})
	})

	return b.Build()
}

type statsLogger struct{}

// NewStatsLogger declares a handler on Stats that logs every sample
// through the framework logger, giving gopsutil a consumer with no
// natural home in the bus primitives themselves.
func NewStatsLogger(log logger.Logger) component.Spec {
	if log == nil {
		log = logger.Noop()
	}

	b := component.NewBuilder("stats-logger", func() *statsLogger { return &statsLogger{} })

	component.Handle(b, func(_ *statsLogger, msg *Stats) component.Return {
		log.Info().Str("component", "stats-logger").Msgf("cpu=%.2f%% mem=%.2fMB", msg.CPU, msg.MemMB)
		return component.Unit()
	})

	return b.Build()
}
