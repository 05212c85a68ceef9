// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeTouchscreen struct {
	mu       sync.Mutex
	enabled  bool
	calls    []string
	failNext bool
}

func newFakeTouchscreen() *fakeTouchscreen {
	return &fakeTouchscreen{enabled: true}
}

func (f *fakeTouchscreen) EnableScanning() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "enable")
	if f.failNext {
		f.failNext = false
		return errors.New("i/o error")
	}
	f.enabled = true
	return nil
}

func (f *fakeTouchscreen) DisableScanning() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "disable")
	if f.failNext {
		f.failNext = false
		return errors.New("i/o error")
	}
	f.enabled = false
	return nil
}

func (f *fakeTouchscreen) isEnabled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.enabled
}

func (f *fakeTouchscreen) getCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type fakeProximity struct {
	mu    sync.Mutex
	armed bool
	arms  int
}

func (f *fakeProximity) ArmForWake() error {
	f.mu.Lock()
	f.armed = true
	f.arms++
	f.mu.Unlock()
	return nil
}

func (f *fakeProximity) DisarmForWake() error {
	f.mu.Lock()
	f.armed = false
	f.mu.Unlock()
	return nil
}

func (f *fakeProximity) isArmed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.armed
}

type fakeWakeLock struct {
	mu   sync.Mutex
	held bool
}

func (f *fakeWakeLock) Acquire() error {
	f.mu.Lock()
	f.held = true
	f.mu.Unlock()
	return nil
}

func (f *fakeWakeLock) Release() error {
	f.mu.Lock()
	f.held = false
	f.mu.Unlock()
	return nil
}

func (f *fakeWakeLock) isHeld() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.held
}

type keyEvent struct {
	code    uint16
	pressed bool
}

type fakeSink struct {
	mu     sync.Mutex
	events []keyEvent
}

func (f *fakeSink) Emit(code uint16, pressed bool) error {
	f.mu.Lock()
	f.events = append(f.events, keyEvent{code: code, pressed: pressed})
	f.mu.Unlock()
	return nil
}

func (f *fakeSink) getEvents() []keyEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]keyEvent(nil), f.events...)
}

// presses returns the codes of press events, in order.
func (f *fakeSink) presses() []uint16 {
	var ret []uint16
	for _, ev := range f.getEvents() {
		if ev.pressed {
			ret = append(ret, ev.code)
		}
	}
	return ret
}

func (f *fakeSink) waitPresses(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool {
		// a pair is complete once the release is seen
		return len(f.getEvents()) >= 2*n
	}, time.Second, time.Millisecond)
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1000, 0)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type testEnv struct {
	tw       *TouchWake
	touch    *fakeTouchscreen
	prox     *fakeProximity
	wakeLock *fakeWakeLock
	sink     *fakeSink
	clock    *fakeClock
}

func newTestEnv(t *testing.T, keepWakeLock bool) *testEnv {
	env := &testEnv{
		touch:    newFakeTouchscreen(),
		prox:     &fakeProximity{},
		wakeLock: &fakeWakeLock{},
		sink:     &fakeSink{},
		clock:    newFakeClock(),
	}
	env.tw = New(Config{
		Touchscreen:  env.touch,
		Proximity:    env.prox,
		WakeLock:     env.wakeLock,
		KeepWakeLock: keepWakeLock,
		Clock:        env.clock,
		KeyDelay:     time.Millisecond,
	})
	env.tw.SetPowerKeyTarget(env.sink)
	t.Cleanup(env.tw.Destroy)
	return env
}

// settle gives the injection worker time to drain anything scheduled.
func settle() {
	time.Sleep(30 * time.Millisecond)
}
