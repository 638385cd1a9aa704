// Package statsview serves runtime statistics of the emulator process, which
// helps tuning the clock rate of the driver loop.
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address is the address the statistics server listens on.
const Address = "localhost:12600"

const url = "/debug/statsview"

// Launch starts the statistics server in the background and returns a
// function that stops it.
func Launch(logger *log.Logger) func() {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()
	go mgr.Start()

	logger.Info("Stats server available", log.String("url", "http://"+Address+url))
	return mgr.Stop
}
