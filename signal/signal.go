// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package signal

import (
	"os"
	"os/signal"
	"syscall"
)

// interruptSignals defines the default signals to catch in order to do
// a proper shutdown.
var interruptSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// InterruptListener returns a channel that gets closed when an
// interrupt signal is received. Repeated signals are logged but only
// the first closes the channel.
func InterruptListener() <-chan struct{} {
	c := make(chan struct{})
	go func() {
		interruptChannel := make(chan os.Signal, 1)
		signal.Notify(interruptChannel, interruptSignals...)

		sig := <-interruptChannel
		log.Infof("Received signal (%s). Shutting down...", sig)
		close(c)

		// Keep draining so repeated signals don't kill the process
		// before the shutdown completes.
		for {
			sig := <-interruptChannel
			log.Infof("Received signal (%s). Already shutting down...", sig)
		}
	}()
	return c
}

// InterruptRequested returns true when the channel returned by
// InterruptListener was closed. This simplifies early shutdown slightly
// since the caller can just use an if statement instead of a select.
func InterruptRequested(interrupted <-chan struct{}) bool {
	select {
	case <-interrupted:
		return true
	default:
	}
	return false
}
