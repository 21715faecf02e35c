package ipc

import (
	"time"
)

// LoopWaitMS is how long one iteration waits for a command, so idle
// sessions do not spin.
const LoopWaitMS = 50

// heartbeatEvery is the iteration interval for the debug heartbeat.
const heartbeatEvery = 1000

// Run drives the IPC loop until the command channel disconnects or a
// graceful shutdown completes. maxLoops > 0 bounds iterations for tests.
func Run(s *State, commands <-chan Command, maxLoops uint64) {
	var loopCount uint64
	disconnected := false
	for {
		loopCount++
		if loopCount%heartbeatEvery == 0 {
			s.logger.Debugf("IPC loop iteration %d, job active: %v", loopCount, s.currentJob != nil)
		}
		if maxLoops > 0 && loopCount >= maxLoops {
			s.logger.Debug("IPC loop reached test limit, exiting")
			return
		}

		if !disconnected {
			// Wait briefly for a command so idle loops stay cheap.
			timer := time.NewTimer(LoopWaitMS * time.Millisecond)
			select {
			case cmd, ok := <-commands:
				timer.Stop()
				if !ok {
					s.logger.Debug("Command channel disconnected")
					disconnected = true
					break
				}
				s.handleCommand(cmd)
			case <-timer.C:
			}
		} else {
			time.Sleep(LoopWaitMS * time.Millisecond)
		}

		s.drainActiveJobs()

		if disconnected && !s.hasActiveWork() {
			s.logger.Debug("IPC exiting: command channel closed, no active work remains")
			return
		}
	}
}
