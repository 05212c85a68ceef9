// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyevent1

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	evdev "github.com/holoplot/go-evdev"
)

const devInputDir = "/dev/input"

// VirtualDeviceName is the name of the uinput device carrying synthetic
// wake and sleep keys. It is never monitored.
const VirtualDeviceName = "dde-touchwake virtual keys"

// udev needs some time to set the permissions of a new node
const hotplugOpenDelay = 300 * time.Millisecond

type deviceKind uint

const (
	kindPowerKey deviceKind = 1 << iota
	kindTouchscreen
	kindProximity
)

func (k deviceKind) String() string {
	var names []string
	if k&kindPowerKey != 0 {
		names = append(names, "power-key")
	}
	if k&kindTouchscreen != 0 {
		names = append(names, "touchscreen")
	}
	if k&kindProximity != 0 {
		names = append(names, "proximity")
	}
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ",")
}

func hasCode(codes []evdev.EvCode, code uint32) bool {
	for _, c := range codes {
		if uint32(c) == code {
			return true
		}
	}
	return false
}

func classifyDevice(keys, switches []evdev.EvCode) deviceKind {
	var kind deviceKind
	if hasCode(keys, KEY_POWER) {
		kind |= kindPowerKey
	}
	if hasCode(keys, BTN_TOUCH) {
		kind |= kindTouchscreen
	}
	if hasCode(switches, SW_FRONT_PROXIMITY) {
		kind |= kindProximity
	}
	return kind
}

type inputDevice interface {
	Name() (string, error)
	CapableEvents(t evdev.EvType) []evdev.EvCode
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

type inputMonitor struct {
	mu      sync.Mutex
	devices map[string]inputDevice
	quit    chan struct{}
	wg      sync.WaitGroup
	watcher *fsnotify.Watcher

	listPaths  func() ([]string, error)
	openDevice func(path string) (inputDevice, error)
}

func newInputMonitor() *inputMonitor {
	return &inputMonitor{
		devices: make(map[string]inputDevice),
		quit:    make(chan struct{}),
		listPaths: func() ([]string, error) {
			paths, err := evdev.ListDevicePaths()
			if err != nil {
				return nil, err
			}
			var ret []string
			for _, p := range paths {
				ret = append(ret, p.Path)
			}
			return ret, nil
		},
		openDevice: func(path string) (inputDevice, error) {
			return evdev.Open(path)
		},
	}
}

var _monitor *inputMonitor

// 开始监控按键
func startKeyEventMonitor() {
	_monitor = newInputMonitor()
	_monitor.start()
}

// 停止监控按键事件
func stopKeyEventMonitor() {
	if _monitor == nil {
		return
	}
	_monitor.stop()
	_monitor = nil
}

func (im *inputMonitor) start() {
	var err error
	im.watcher, err = fsnotify.NewWatcher()
	if err != nil {
		logger.Warning("failed to create input device watcher:", err)
	} else {
		err = im.watcher.Add(devInputDir)
		if err != nil {
			logger.Warning("failed to watch", devInputDir, err)
		}
		im.wg.Add(1)
		go im.watch()
	}

	im.scan()
}

func (im *inputMonitor) stop() {
	close(im.quit)
	if im.watcher != nil {
		err := im.watcher.Close()
		if err != nil {
			logger.Warning(err)
		}
	}

	im.mu.Lock()
	for path, dev := range im.devices {
		// unblocks the reader
		err := dev.Close()
		if err != nil {
			logger.Debugf("close %s: %v", path, err)
		}
		delete(im.devices, path)
	}
	im.mu.Unlock()

	im.wg.Wait()
}

func (im *inputMonitor) isQuit() bool {
	select {
	case <-im.quit:
		return true
	default:
		return false
	}
}

func (im *inputMonitor) scan() {
	paths, err := im.listPaths()
	if err != nil {
		logger.Warning("failed to list input devices:", err)
		return
	}
	for _, path := range paths {
		im.addDevice(path)
	}
}

func (im *inputMonitor) addDevice(path string) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if im.isQuit() {
		return
	}
	if _, ok := im.devices[path]; ok {
		return
	}

	dev, err := im.openDevice(path)
	if err != nil {
		logger.Debugf("open %s: %v", path, err)
		return
	}

	name, _ := dev.Name()
	if name == VirtualDeviceName {
		logger.Debug("skip virtual key device", path)
		_ = dev.Close()
		return
	}

	kind := classifyDevice(dev.CapableEvents(evdev.EV_KEY), dev.CapableEvents(evdev.EV_SW))
	if kind == 0 {
		_ = dev.Close()
		return
	}

	logger.Infof("monitor input device %s %q (%v)", path, name, kind)
	im.devices[path] = dev
	im.wg.Add(1)
	go im.readLoop(path, dev)
}

func (im *inputMonitor) removeDevice(path string, dev inputDevice) {
	im.mu.Lock()
	defer im.mu.Unlock()
	if cur, ok := im.devices[path]; ok && cur == dev {
		delete(im.devices, path)
		_ = dev.Close()
		logger.Debug("input device removed:", path)
	}
}

func (im *inputMonitor) deviceCount() int {
	im.mu.Lock()
	defer im.mu.Unlock()
	return len(im.devices)
}

func (im *inputMonitor) readLoop(path string, dev inputDevice) {
	defer im.wg.Done()
	for {
		ev, err := dev.ReadOne()
		if err != nil {
			if !im.isQuit() {
				logger.Debugf("read %s: %v", path, err)
			}
			im.removeDevice(path, dev)
			return
		}

		switch ev.Type {
		case evdev.EV_KEY, evdev.EV_SW:
			pushKeyEvent(uint16(ev.Type), uint32(ev.Code), uint32(ev.Value))
		}
	}
}

func isEventNode(name string) bool {
	return filepath.Dir(name) == devInputDir &&
		strings.HasPrefix(filepath.Base(name), "event")
}

func (im *inputMonitor) watch() {
	defer im.wg.Done()
	for {
		select {
		case <-im.quit:
			logger.Debug("[Fsnotify] quit watch")
			return
		case err, ok := <-im.watcher.Errors:
			if !ok {
				return
			}
			logger.Warning("Receive input watcher error:", err)
		case ev, ok := <-im.watcher.Events:
			if !ok {
				return
			}
			if !isEventNode(ev.Name) || ev.Op&fsnotify.Create == 0 {
				continue
			}
			logger.Debug("[Fsnotify] input device added:", ev.Name)
			select {
			case <-time.After(hotplugOpenDelay):
			case <-im.quit:
				return
			}
			im.addDevice(ev.Name)
		}
	}
}
