// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake1

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	evdev "github.com/holoplot/go-evdev"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxdeepin/dde-touchwake/system/keyevent1"
	"github.com/linuxdeepin/dde-touchwake/touchwake"
)

type recordHandler struct {
	calls []string
}

func (r *recordHandler) PowerKeyPressed()   { r.calls = append(r.calls, "power-press") }
func (r *recordHandler) PowerKeyReleased()  { r.calls = append(r.calls, "power-release") }
func (r *recordHandler) ProximityDetected() { r.calls = append(r.calls, "prox-near") }
func (r *recordHandler) ProximityOff()      { r.calls = append(r.calls, "prox-far") }
func (r *recordHandler) TouchEvent(isRelease bool) {
	if isRelease {
		r.calls = append(r.calls, "touch-release")
	} else {
		r.calls = append(r.calls, "touch-press")
	}
}

func Test_dispatchKeyEvent(t *testing.T) {
	tests := []struct {
		name    string
		ev      keyevent1.KeyEvent
		handled bool
		call    string
	}{
		{"power press", keyevent1.KeyEvent{Type: keyevent1.EV_KEY, Keycode: keyevent1.KEY_POWER, State: 1}, true, "power-press"},
		{"power release", keyevent1.KeyEvent{Type: keyevent1.EV_KEY, Keycode: keyevent1.KEY_POWER, State: 0}, true, "power-release"},
		{"power repeat", keyevent1.KeyEvent{Type: keyevent1.EV_KEY, Keycode: keyevent1.KEY_POWER, State: 2}, false, ""},
		{"touch press", keyevent1.KeyEvent{Type: keyevent1.EV_KEY, Keycode: keyevent1.BTN_TOUCH, State: 1}, true, "touch-press"},
		{"touch release", keyevent1.KeyEvent{Type: keyevent1.EV_KEY, Keycode: keyevent1.BTN_TOUCH, State: 0}, true, "touch-release"},
		{"proximity near", keyevent1.KeyEvent{Type: keyevent1.EV_SW, Keycode: keyevent1.SW_FRONT_PROXIMITY, State: 1}, true, "prox-near"},
		{"proximity far", keyevent1.KeyEvent{Type: keyevent1.EV_SW, Keycode: keyevent1.SW_FRONT_PROXIMITY, State: 0}, true, "prox-far"},
		{"other key", keyevent1.KeyEvent{Type: keyevent1.EV_KEY, Keycode: keyevent1.KEY_WAKEUP, State: 1}, false, ""},
		{"other switch", keyevent1.KeyEvent{Type: keyevent1.EV_SW, Keycode: 0, State: 1}, false, ""},
		{"touch code as switch", keyevent1.KeyEvent{Type: keyevent1.EV_SW, Keycode: keyevent1.BTN_TOUCH, State: 1}, false, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &recordHandler{}
			ev := tt.ev
			assert.Equal(t, tt.handled, dispatchKeyEvent(h, &ev))
			if tt.call == "" {
				assert.Empty(t, h.calls)
			} else {
				assert.Equal(t, []string{tt.call}, h.calls)
			}
		})
	}
}

func Test_dispatchDrivesCore(t *testing.T) {
	tw := touchwake.New(touchwake.Config{})
	defer tw.Destroy()
	tw.Settings().SetEnabled(true)
	tw.OnDisplaySuspend()

	handled := dispatchKeyEvent(tw, &keyevent1.KeyEvent{
		Type: keyevent1.EV_KEY, Keycode: keyevent1.BTN_TOUCH, State: keyevent1.KEY_STATE_PRESSED,
	})
	assert.True(t, handled)
	assert.False(t, tw.IsSuspended())
}

func Test_loadDeviceConfig(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "devices.yaml")
	content := `
touchscreen:
  name: Goodix Capacitive TouchScreen
  inhibitPath: /sys/class/input/event5/device/inhibited
proximity:
  enablePath: /sys/bus/iio/devices/iio:device0/in_proximity_en
`
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))

	cfg, err := loadDeviceConfig(filename)
	require.NoError(t, err)
	assert.Equal(t, "Goodix Capacitive TouchScreen", cfg.Touchscreen.Name)
	assert.Equal(t, "/sys/class/input/event5/device/inhibited", cfg.Touchscreen.InhibitPath)
	assert.Equal(t, "", cfg.Proximity.Name)
	assert.Equal(t, "/sys/bus/iio/devices/iio:device0/in_proximity_en", cfg.Proximity.EnablePath)

	require.NoError(t, os.WriteFile(filename, []byte("touchscreen: [1, 2"), 0644))
	_, err = loadDeviceConfig(filename)
	assert.Error(t, err)

	_, err = loadDeviceConfig(filepath.Join(dir, "missing.yaml"))
	assert.True(t, os.IsNotExist(err))

	// missing file falls back to detection
	cfg = loadDeviceConfigSafe(filepath.Join(dir, "missing.yaml"))
	require.NotNil(t, cfg)
	assert.Equal(t, "", cfg.Touchscreen.InhibitPath)
}

func Test_defaultConfig(t *testing.T) {
	cfg := defaultConfig()
	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.KeepWakeLock)
	assert.Equal(t, touchwake.DefaultMode, cfg.Mode)
	assert.Equal(t, defaultDeviceConfigFile, cfg.DeviceConfig)
}

func Test_toUint32(t *testing.T) {
	for _, v := range []interface{}{float64(7), int64(7), int32(7), uint32(7)} {
		got, ok := toUint32(v)
		assert.True(t, ok)
		assert.Equal(t, uint32(7), got)
	}
	_, ok := toUint32("7")
	assert.False(t, ok)
}

func Test_findInput(t *testing.T) {
	candidates := []inputCandidate{
		{name: "Power Button", path: "/dev/input/event0", keys: []evdev.EvCode{evdev.KEY_POWER}},
		{name: "ELAN Touchscreen", path: "/dev/input/event4", keys: []evdev.EvCode{evdev.BTN_TOUCH}},
		{name: "Goodix Capacitive TouchScreen", path: "/dev/input/event5", keys: []evdev.EvCode{evdev.BTN_TOUCH}},
		{name: "proximity", path: "/dev/input/event6", switches: []evdev.EvCode{keyevent1.SW_FRONT_PROXIMITY}},
	}

	c, ok := findInput(candidates, "", isTouchscreen)
	require.True(t, ok)
	assert.Equal(t, "/dev/input/event4", c.path)

	c, ok = findInput(candidates, "Goodix Capacitive TouchScreen", isTouchscreen)
	require.True(t, ok)
	assert.Equal(t, "/dev/input/event5", c.path)

	_, ok = findInput(candidates, "missing", isTouchscreen)
	assert.False(t, ok)

	c, ok = findInput(candidates, "", isProximity)
	require.True(t, ok)
	assert.Equal(t, "/dev/input/event6", c.path)

	_, ok = findInput(candidates[:1], "", isTouchscreen)
	assert.False(t, ok)
}

func Test_sysfsTouchscreen(t *testing.T) {
	dir := t.TempDir()
	old := sysClassInputDir
	sysClassInputDir = dir
	defer func() { sysClassInputDir = old }()

	attr := sysfsDeviceAttr("/dev/input/event5", "inhibited")
	assert.Equal(t, filepath.Join(dir, "event5", "device", "inhibited"), attr)
	require.NoError(t, os.MkdirAll(filepath.Dir(attr), 0755))
	require.NoError(t, os.WriteFile(attr, []byte("0"), 0644))

	candidates := []inputCandidate{
		{name: "touch", path: "/dev/input/event5", keys: []evdev.EvCode{evdev.BTN_TOUCH}},
	}
	ts := newTouchscreen(&DeviceConfig{}, candidates)
	require.NotNil(t, ts)

	require.NoError(t, ts.DisableScanning())
	content, err := os.ReadFile(attr)
	require.NoError(t, err)
	assert.Equal(t, "1", string(content))

	require.NoError(t, ts.EnableScanning())
	content, err = os.ReadFile(attr)
	require.NoError(t, err)
	assert.Equal(t, "0", string(content))

	// no device
	assert.Nil(t, newTouchscreen(&DeviceConfig{}, nil))

	// configured path that does not exist
	cfg := &DeviceConfig{}
	cfg.Touchscreen.InhibitPath = filepath.Join(dir, "missing")
	assert.Nil(t, newTouchscreen(cfg, candidates))

	broken := &sysfsTouchscreen{inhibitPath: filepath.Join(dir, "no", "such", "file")}
	assert.Error(t, broken.DisableScanning())
}

func Test_sysfsProximity(t *testing.T) {
	dir := t.TempDir()
	enable := filepath.Join(dir, "in_proximity_en")
	require.NoError(t, os.WriteFile(enable, []byte("0"), 0644))

	assert.Nil(t, newProximity(&DeviceConfig{}, nil))

	cfg := &DeviceConfig{}
	cfg.Proximity.EnablePath = enable
	prox := newProximity(cfg, nil)
	require.NotNil(t, prox)

	require.NoError(t, prox.ArmForWake())
	content, _ := os.ReadFile(enable)
	assert.Equal(t, "1", string(content))

	require.NoError(t, prox.DisarmForWake())
	content, _ = os.ReadFile(enable)
	assert.Equal(t, "0", string(content))
}

type fakeWriter struct {
	events []evdev.InputEvent
	fail   bool
	closed bool
}

func (w *fakeWriter) WriteOne(event *evdev.InputEvent) error {
	if w.fail {
		return errors.New("no device")
	}
	w.events = append(w.events, *event)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func Test_uinputKeySink(t *testing.T) {
	w := &fakeWriter{}
	sink := &uinputKeySink{dev: w}

	require.NoError(t, sink.Emit(touchwake.KeyWakeUp, true))
	require.NoError(t, sink.Emit(touchwake.KeyWakeUp, false))
	assert.Equal(t, []evdev.InputEvent{
		{Type: evdev.EV_KEY, Code: evdev.KEY_WAKEUP, Value: 1},
		{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0},
		{Type: evdev.EV_KEY, Code: evdev.KEY_WAKEUP, Value: 0},
		{Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0},
	}, w.events)

	w.fail = true
	assert.Error(t, sink.Emit(touchwake.KeySleep, true))

	require.NoError(t, sink.Close())
	assert.True(t, w.closed)
	assert.Error(t, sink.Emit(touchwake.KeySleep, true))
	assert.NoError(t, sink.Close())
}

func Test_keyCodesMatchCore(t *testing.T) {
	assert.Equal(t, uint32(touchwake.KeyWakeUp), keyevent1.KEY_WAKEUP)
	assert.Equal(t, uint32(touchwake.KeySleep), keyevent1.KEY_SLEEP)
}

type fakeInhibitFds struct {
	next   int
	closed []int
	fail   bool
}

func (f *fakeInhibitFds) inhibitor(mode string) *logindInhibitor {
	return &logindInhibitor{
		mode: mode,
		fd:   -1,
		inhibit: func() (int, error) {
			if f.fail {
				return 0, errors.New("login1 gone")
			}
			f.next++
			return f.next, nil
		},
		closeFd: func(fd int) error {
			f.closed = append(f.closed, fd)
			return nil
		},
	}
}

func Test_logindInhibitor(t *testing.T) {
	fds := &fakeInhibitFds{}
	l := fds.inhibitor(inhibitModeDelay)

	require.NoError(t, l.Acquire())
	require.NoError(t, l.Acquire())
	assert.True(t, l.held())
	assert.Equal(t, 1, fds.next)

	l.reacquire()
	assert.True(t, l.held())
	assert.Equal(t, []int{1}, fds.closed)

	require.NoError(t, l.Release())
	require.NoError(t, l.Release())
	assert.False(t, l.held())
	assert.Equal(t, []int{1, 2}, fds.closed)

	// a released inhibitor stays released across a logind restart
	l.reacquire()
	assert.False(t, l.held())

	fds.fail = true
	assert.Error(t, l.Acquire())
	assert.False(t, l.held())
}

type recordTransitions struct {
	delay *logindInhibitor
	calls []string
}

func (r *recordTransitions) OnDisplaySuspend() {
	r.calls = append(r.calls, fmt.Sprintf("suspend delay-held=%v", r.delay.held()))
}

func (r *recordTransitions) OnDisplayResume() {
	r.calls = append(r.calls, fmt.Sprintf("resume delay-held=%v", r.delay.held()))
}

func Test_sleepHandlerHoldsDelayUntilSuspended(t *testing.T) {
	fds := &fakeInhibitFds{}
	delay := fds.inhibitor(inhibitModeDelay)
	require.NoError(t, delay.Acquire())

	tr := &recordTransitions{delay: delay}
	changed := 0
	h := &sleepHandler{tw: tr, delay: delay, onChanged: func() { changed++ }}

	h.handlePrepareForSleep(true)
	assert.Equal(t, []string{"suspend delay-held=true"}, tr.calls)
	assert.False(t, delay.held())

	h.handlePrepareForSleep(false)
	assert.Equal(t, []string{"suspend delay-held=true", "resume delay-held=false"}, tr.calls)
	assert.True(t, delay.held())
	assert.Equal(t, 2, changed)
}

func Test_sleepHandlerDrivesCore(t *testing.T) {
	fds := &fakeInhibitFds{}
	delay := fds.inhibitor(inhibitModeDelay)
	tw := touchwake.New(touchwake.Config{})
	defer tw.Destroy()

	h := &sleepHandler{tw: tw, delay: delay}
	h.handlePrepareForSleep(true)
	assert.True(t, tw.IsSuspended())
	h.handlePrepareForSleep(false)
	assert.False(t, tw.IsSuspended())
	assert.True(t, delay.held())
}
