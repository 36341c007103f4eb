// +build !windows

package binutil

import (
	"os"

	"github.com/mxosim/reality/engine/gwlog"
	"github.com/sevlyar/go-daemon"
)

// Daemonize runs the current process in background, the returned context must be released on exit
func Daemonize() *daemon.Context {
	context := &daemon.Context{
		PidFileName: "world.pid",
		PidFilePerm: 0644,
	}
	child, err := context.Reborn()

	if err != nil {
		gwlog.Panicf("daemonize failed: %v", err)
	}

	if child != nil {
		gwlog.Infof("run in daemon mode")
		os.Exit(0)
		return nil
	}
	return context
}
