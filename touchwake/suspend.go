// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

import "time"

// caller holds tw.mu
func (tw *TouchWake) disableTouch() {
	logger.Debug("disable touch controls")
	err := tw.touch.DisableScanning()
	if err != nil {
		logger.Warning("failed to disable touchscreen:", err)
	}
	// set even on failure so that resume retries the enable
	tw.touchDisabled = true
}

// caller holds tw.mu
func (tw *TouchWake) enableTouch() {
	logger.Debug("enable touch controls")
	err := tw.touch.EnableScanning()
	if err != nil {
		logger.Warning("failed to enable touchscreen:", err)
	}
	tw.touchDisabled = false
}

// caller holds tw.mu
func (tw *TouchWake) acquireWakeLock() {
	if tw.wakeLockHeld {
		return
	}
	err := tw.wakeLock.Acquire()
	if err != nil {
		logger.Warning("failed to acquire wake lock:", err)
		return
	}
	tw.wakeLockHeld = true
}

// caller holds tw.mu
func (tw *TouchWake) releaseWakeLock() {
	if !tw.wakeLockHeld {
		return
	}
	err := tw.wakeLock.Release()
	if err != nil {
		logger.Warning("failed to release wake lock:", err)
	}
	tw.wakeLockHeld = false
}

// caller holds tw.mu
func (tw *TouchWake) disarmProximity() {
	if !tw.proxArmed {
		return
	}
	err := tw.prox.DisarmForWake()
	if err != nil {
		logger.Warning("failed to disarm proximity sensor:", err)
	}
	tw.proxArmed = false
}

// caller holds tw.mu, the job is not joined
func (tw *TouchWake) dropTouchOff() {
	task := tw.touchOffTask
	if task == nil {
		return
	}
	tw.touchOffTask = nil
	// a job already running finds itself superseded in touchOff
	task.Cancel()
}

// cancelTouchOff cancels the pending delayed disable and joins it if it is
// already running. Must be called without tw.mu held, the job takes it.
func (tw *TouchWake) cancelTouchOff() {
	tw.mu.Lock()
	task := tw.touchOffTask
	tw.touchOffTask = nil
	tw.mu.Unlock()

	if task != nil {
		task.CancelAndWait()
	}
}

func (tw *TouchWake) touchOff(task **delayedTask) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if tw.touchOffTask != *task {
		// superseded by a newer suspend or cancelled by resume
		return
	}
	tw.touchOffTask = nil

	logger.Debug("touch off delay expired")
	tw.disableTouch()
	tw.releaseWakeLock()
}

// caller holds tw.mu
func (tw *TouchWake) armTouchOff(delayMs uint32) {
	if delayMs == 0 {
		return
	}
	var task *delayedTask
	// the job identifies itself through the pointer, which is only assigned
	// under tw.mu, held by the caller
	task = newDelayedTask("touchOff", time.Duration(delayMs)*time.Millisecond, func() {
		tw.touchOff(&task)
	})
	tw.touchOffTask = task
}

// OnDisplaySuspend is called by the display power notifier before the
// screen blanks.
func (tw *TouchWake) OnDisplaySuspend() {
	tw.transitionMu.Lock()
	defer tw.transitionMu.Unlock()

	logger.Debug("enter display suspend")
	tw.cancelTouchOff()

	enabled, mode := tw.settings.snapshot()
	delay := tw.settings.TouchOffDelay()

	tw.mu.Lock()
	defer tw.mu.Unlock()

	if enabled {
		if tw.timedOut && mode.KeepTouchOnWake {
			logger.Debug("display suspend, keep touch enabled")
			if tw.keepWakeLock {
				tw.acquireWakeLock()
			}
			tw.armTouchOff(delay)
		} else {
			logger.Debug("display suspend, disable touch immediately")
			tw.disableTouch()
		}

		if mode.UseProximityWake {
			err := tw.prox.ArmForWake()
			if err != nil {
				logger.Warning("failed to arm proximity sensor:", err)
			}
			tw.proxArmed = true
		}
	} else {
		logger.Debug("display suspend, disable touch immediately (feature disabled)")
		tw.disableTouch()
	}

	tw.suspended = true
}

// OnDisplayResume is called by the display power notifier after the screen
// is back on.
func (tw *TouchWake) OnDisplayResume() {
	tw.transitionMu.Lock()
	defer tw.transitionMu.Unlock()

	logger.Debug("enter display resume")
	tw.cancelTouchOff()

	tw.mu.Lock()
	defer tw.mu.Unlock()

	tw.releaseWakeLock()

	if tw.touchDisabled {
		tw.enableTouch()
	}

	tw.disarmProximity()

	tw.timedOut = true
	tw.suspended = false
}
