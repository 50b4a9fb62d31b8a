// Package process resolves window-owning processes using gopsutil.
package process

import (
	"fmt"
	"math"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/Norgate-AV/wintools/internal/interfaces"
)

// Resolver implements interfaces.ProcessResolver.
type Resolver struct{}

// NewResolver creates a new process resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ExecutablePath returns the full image path of pid.
func (r *Resolver) ExecutablePath(pid uint32) (string, error) {
	if pid == 0 || pid > math.MaxInt32 {
		return "", fmt.Errorf("invalid process id %d", pid)
	}

	p, err := process.NewProcess(int32(pid))
	if err != nil {
		return "", fmt.Errorf("failed to open process %d: %w", pid, err)
	}

	exe, err := p.Exe()
	if err != nil {
		return "", fmt.Errorf("failed to query executable of process %d: %w", pid, err)
	}

	return exe, nil
}

var _ interfaces.ProcessResolver = (*Resolver)(nil)
