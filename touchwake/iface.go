// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

import "time"

// Touchscreen is the touch controller driver.
type Touchscreen interface {
	EnableScanning() error
	DisableScanning() error
}

// ProximitySensor arms the sensor so that it reports near/far while the
// display is off.
type ProximitySensor interface {
	ArmForWake() error
	DisarmForWake() error
}

// KeySink receives synthetic key events, usually a virtual input device.
type KeySink interface {
	Emit(code uint16, pressed bool) error
}

// WakeLock keeps the host out of deeper sleep while held.
type WakeLock interface {
	Acquire() error
	Release() error
}

// Clock must be monotonic within one boot.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// time.Now carries a monotonic reading, so Sub between two values is immune
// to wall clock changes.
func (systemClock) Now() time.Time {
	return time.Now()
}

type nopTouchscreen struct{}

func (nopTouchscreen) EnableScanning() error  { return nil }
func (nopTouchscreen) DisableScanning() error { return nil }

type nopProximity struct{}

func (nopProximity) ArmForWake() error    { return nil }
func (nopProximity) DisarmForWake() error { return nil }

type nopWakeLock struct{}

func (nopWakeLock) Acquire() error { return nil }
func (nopWakeLock) Release() error { return nil }
