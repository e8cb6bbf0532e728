package neon

import (
	"fmt"
	"slices"
	"time"
)

// Profiler records the CPU time of named scopes for the last frame.
type Profiler struct {
	Scopes     map[string]time.Duration
	StartTimes map[string]time.Time
	Order      []string

	now func() time.Time
}

func NewProfiler() *Profiler {
	return &Profiler{
		Scopes:     make(map[string]time.Duration),
		StartTimes: make(map[string]time.Time),
		now:        time.Now,
	}
}

func (p *Profiler) BeginScope(name string) {
	p.StartTimes[name] = p.now()
	if !slices.Contains(p.Order, name) {
		p.Order = append(p.Order, name)
	}
}

func (p *Profiler) EndScope(name string) {
	if start, ok := p.StartTimes[name]; ok {
		p.Scopes[name] = p.now().Sub(start)
		delete(p.StartTimes, name)
	}
}

// Lines formats the scopes in first-seen order.
func (p *Profiler) Lines() []string {
	lines := make([]string, 0, len(p.Order))
	for _, name := range p.Order {
		ms := float64(p.Scopes[name].Microseconds()) / 1000.0
		lines = append(lines, fmt.Sprintf("%s: %.2f ms", name, ms))
	}
	return lines
}
