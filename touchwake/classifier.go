// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

// ProximityDetected latches the near state. Arming the sensor is owned by
// the suspend controller.
func (tw *TouchWake) ProximityDetected() {
	logger.Debug("proximity near event")
	tw.mu.Lock()
	tw.proxNear = true
	tw.mu.Unlock()
}

func (tw *TouchWake) ProximityOff() {
	logger.Debug("proximity far event")
	enabled, mode := tw.settings.snapshot()

	tw.mu.Lock()
	defer tw.mu.Unlock()

	if enabled && tw.proxNear && mode.UseProximityWake && tw.suspended {
		logger.Debug("waking by proximity sensor")
		tw.suspended = false
		tw.dropTouchOff()
		tw.scheduleKey(KeyWakeUp)
	}
	tw.proxNear = false
}

func (tw *TouchWake) PowerKeyPressed() {
	logger.Debug("power key pressed")
	tw.mu.Lock()
	tw.lastPowerPress = tw.clock.Now()
	tw.mu.Unlock()
}

// PowerKeyReleased marks timedOut after a long press or a press while
// suspended. A short press while awake means the user is turning the
// display off, and timedOut is left alone.
func (tw *TouchWake) PowerKeyReleased() {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	pressed := tw.since(tw.lastPowerPress)
	if pressed > timeLongPress || tw.suspended {
		logger.Debugf("power key long press or wake released, pressed %v", pressed)
		tw.timedOut = true
	} else {
		logger.Debugf("power key short press released, pressed %v", pressed)
	}
}

// TouchEvent is called by the touchscreen driver on every press and release.
func (tw *TouchWake) TouchEvent(isRelease bool) {
	enabled, mode := tw.settings.snapshot()
	if !enabled || !mode.KeepTouchOnWake {
		return
	}

	tw.mu.Lock()
	defer tw.mu.Unlock()

	if mode.RequireProximityForTouch && !tw.proxNear {
		return
	}

	logger.Debugf("touch event, release: %v", isRelease)
	if tw.suspended {
		logger.Debug("touch while suspended, waking up")
		tw.suspended = false
		tw.dropTouchOff()
		if !isRelease && mode.LongTouchResleep {
			tw.firstTouch = true
			tw.touchBegin = tw.clock.Now()
		}
		tw.scheduleKey(KeyWakeUp)
	} else if isRelease && tw.firstTouch {
		tw.firstTouch = false
		touched := tw.since(tw.touchBegin)
		if touched > timeLongTouch {
			logger.Debugf("long first touch released after %v, back to sleep", touched)
			tw.scheduleKey(KeySleep)
		} else {
			logger.Debugf("short first touch released after %v", touched)
		}
	}
}
