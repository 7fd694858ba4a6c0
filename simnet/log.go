package simnet

import (
	"github.com/eramoss/ghostdagsim/logger"
)

var log, _ = logger.Get(logger.SubsystemTags.SIMU)
