//go:build !windows

package cmd

import (
	"runtime"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/config"
	"github.com/Norgate-AV/wintools/internal/logger"
)

func newPlatform(_ logger.LoggerInterface, _ *config.Config) (*Platform, error) {
	return nil, apperr.New(apperr.KindUnsupportedPlatform, "wintools requires Windows (running on %s)", runtime.GOOS)
}
