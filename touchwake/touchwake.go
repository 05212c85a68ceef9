// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package touchwake decides whether the touchscreen keeps scanning while the
// display is off, and turns touch, proximity and power key input into
// synthetic wake and sleep key presses.
package touchwake

import (
	"sync"
	"time"

	"github.com/linuxdeepin/go-lib/log"
)

var logger = log.NewLogger("daemon/touchwake")

func init() {
	logger.SetLogLevel(log.LevelInfo)
}

const (
	timeLongPress = 500 * time.Millisecond
	timeLongTouch = 300 * time.Millisecond
)

type Config struct {
	Touchscreen Touchscreen
	Proximity   ProximitySensor
	WakeLock    WakeLock
	// hold WakeLock while touch stays enabled with the display off
	KeepWakeLock bool

	Clock    Clock
	KeyDelay time.Duration
}

// State is a consistent snapshot, see TouchWake.State.
type State struct {
	Enabled       bool
	Mode          ModeConfig
	Debug         bool
	TouchOffDelay uint32

	TouchDisabled    bool
	Suspended        bool
	TimedOut         bool
	ProximityNear    bool
	FirstTouchActive bool
	WakeLockHeld     bool
	ProximityArmed   bool
	TouchOffPending  bool
}

type TouchWake struct {
	settings    *Settings
	injector    *KeyInjector
	clock       Clock
	destroyOnce sync.Once

	touch    Touchscreen
	prox     ProximitySensor
	wakeLock WakeLock

	// serializes OnDisplaySuspend and OnDisplayResume, never taken by the
	// delayed disable job
	transitionMu sync.Mutex

	// guards everything below
	mu           sync.Mutex
	keepWakeLock bool

	touchDisabled  bool
	suspended      bool
	timedOut       bool
	proxNear       bool
	firstTouch     bool
	wakeLockHeld   bool
	proxArmed      bool
	touchOffTask   *delayedTask
	lastPowerPress time.Time
	touchBegin     time.Time
}

func New(cfg Config) *TouchWake {
	tw := &TouchWake{
		settings:     newSettings(),
		injector:     newKeyInjector(cfg.KeyDelay),
		clock:        cfg.Clock,
		touch:        cfg.Touchscreen,
		prox:         cfg.Proximity,
		wakeLock:     cfg.WakeLock,
		keepWakeLock: cfg.KeepWakeLock,
		timedOut:     true,
	}
	if tw.clock == nil {
		tw.clock = systemClock{}
	}
	if tw.touch == nil {
		tw.touch = nopTouchscreen{}
	}
	if tw.prox == nil {
		tw.prox = nopProximity{}
	}
	if tw.wakeLock == nil {
		tw.wakeLock = nopWakeLock{}
	}
	tw.lastPowerPress = tw.clock.Now()
	tw.injector.start()
	return tw
}

// Destroy leaves the hardware the way it was found: touch scanning, the
// proximity sensor disarmed and no wake lock held.
func (tw *TouchWake) Destroy() {
	tw.destroyOnce.Do(tw.destroy)
}

func (tw *TouchWake) destroy() {
	tw.transitionMu.Lock()
	defer tw.transitionMu.Unlock()

	tw.cancelTouchOff()

	tw.mu.Lock()
	tw.releaseWakeLock()
	if tw.touchDisabled {
		tw.enableTouch()
	}
	tw.disarmProximity()
	tw.mu.Unlock()

	tw.injector.stop()
}

func (tw *TouchWake) Settings() *Settings {
	return tw.settings
}

func (tw *TouchWake) Injector() *KeyInjector {
	return tw.injector
}

// SetPowerKeyTarget registers the sink used for synthetic key emission.
func (tw *TouchWake) SetPowerKeyTarget(sink KeySink) {
	logger.Debug("power key target set")
	tw.injector.SetTarget(sink)
}

func (tw *TouchWake) SetKeepWakeLock(keep bool) {
	tw.mu.Lock()
	tw.keepWakeLock = keep
	tw.mu.Unlock()
}

func (tw *TouchWake) IsSuspended() bool {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	return tw.suspended
}

func (tw *TouchWake) GetTouchOffDelay() uint32 {
	return tw.settings.TouchOffDelay()
}

func (tw *TouchWake) State() State {
	enabled, mode := tw.settings.snapshot()
	st := State{
		Enabled:       enabled,
		Mode:          mode,
		Debug:         tw.settings.Debug(),
		TouchOffDelay: tw.settings.TouchOffDelay(),
	}

	tw.mu.Lock()
	st.TouchDisabled = tw.touchDisabled
	st.Suspended = tw.suspended
	st.TimedOut = tw.timedOut
	st.ProximityNear = tw.proxNear
	st.FirstTouchActive = tw.firstTouch
	st.WakeLockHeld = tw.wakeLockHeld
	st.ProximityArmed = tw.proxArmed
	st.TouchOffPending = tw.touchOffTask != nil
	tw.mu.Unlock()
	return st
}

func (tw *TouchWake) scheduleKey(code uint16) {
	tw.injector.Schedule(code)
}

func (tw *TouchWake) since(t time.Time) time.Duration {
	return tw.clock.Now().Sub(t)
}
