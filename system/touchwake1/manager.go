// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake1

import (
	"sync"

	ConfigManager "github.com/linuxdeepin/go-dbus-factory/org.desktopspec.ConfigManager"
	login1 "github.com/linuxdeepin/go-dbus-factory/system/org.freedesktop.login1"
	"github.com/linuxdeepin/go-lib/dbusutil"

	"github.com/linuxdeepin/dde-touchwake/system/keyevent1"
	"github.com/linuxdeepin/dde-touchwake/touchwake"
)

//go:generate dbusutil-gen -type Manager manager.go
//go:generate dbusutil-gen em -type Manager

type Manager struct {
	service       *dbusutil.Service
	systemSigLoop *dbusutil.SignalLoop
	loginManager  login1.Manager
	dsgTouchWake  ConfigManager.Manager
	cfg           *Config

	tw           *touchwake.TouchWake
	keySink      *uinputKeySink
	wakeLock     *logindInhibitor
	sleepDelay   *logindInhibitor
	login1Watch  *login1Watcher
	sleepHandler *sleepHandler

	eventCh chan *keyevent1.KeyEvent
	quit    chan struct{}
	wg      sync.WaitGroup

	PropsMu sync.RWMutex
	// 功能总开关
	Enabled bool `prop:"access:rw"`
	// 模式位: 0x1 触摸唤醒, 0x2 接近唤醒, 0x4 长按触摸再次休眠, 0x8 触摸唤醒需要接近
	Mode  uint32 `prop:"access:rw"`
	Debug bool   `prop:"access:rw"`

	Version       string
	Suspended     bool
	TouchOffDelay uint32
}

func newManager(service *dbusutil.Service) (*Manager, error) {
	m := &Manager{
		service: service,
		cfg:     defaultConfig(),
		eventCh: make(chan *keyevent1.KeyEvent, 64),
		quit:    make(chan struct{}),
	}
	m.init()
	return m, nil
}

func (m *Manager) init() {
	conn := m.service.Conn()
	m.systemSigLoop = dbusutil.NewSignalLoop(conn, 10)
	m.systemSigLoop.Start()

	err := m.initDsgConfig(conn)
	if err != nil {
		logger.Warning(err)
	}

	devCfg := loadDeviceConfigSafe(m.cfg.DeviceConfig)
	candidates := listInputCandidates()

	twCfg := touchwake.Config{
		KeepWakeLock: m.cfg.KeepWakeLock,
	}
	if ts := newTouchscreen(devCfg, candidates); ts != nil {
		twCfg.Touchscreen = ts
	}
	if prox := newProximity(devCfg, candidates); prox != nil {
		twCfg.Proximity = prox
	}

	m.loginManager = login1.NewManager(conn)
	m.loginManager.InitSignalExt(m.systemSigLoop, true)
	m.wakeLock = newLogindInhibitor(m.loginManager, inhibitModeBlock, "keep touch wake-up available")
	m.sleepDelay = newLogindInhibitor(m.loginManager, inhibitModeDelay, "switch touch and proximity before sleep")
	m.login1Watch = newLogin1Watcher(conn, m.systemSigLoop, m.wakeLock, m.sleepDelay)
	twCfg.WakeLock = m.wakeLock

	m.tw = touchwake.New(twCfg)
	m.tw.Settings().SetEnabled(m.cfg.Enabled)
	err = m.tw.Settings().SetMode(m.cfg.Mode)
	if err != nil {
		logger.Warningf("invalid mode 0x%x in dconfig: %v", m.cfg.Mode, err)
	}

	m.keySink, err = newUinputKeySink()
	if err != nil {
		logger.Warning(err)
	} else {
		m.tw.SetPowerKeyTarget(m.keySink)
	}

	m.connectDsgChanged(m.systemSigLoop)

	m.sleepHandler = &sleepHandler{
		tw:        m.tw,
		delay:     m.sleepDelay,
		onChanged: m.syncProps,
	}
	_, err = m.loginManager.ConnectPrepareForSleep(func(before bool) {
		logger.Info("login1 PrepareForSleep", before)
		m.sleepHandler.handlePrepareForSleep(before)
	})
	if err != nil {
		logger.Warning("failed to connect signal PrepareForSleep:", err)
	} else {
		err = m.sleepDelay.Acquire()
		if err != nil {
			logger.Warning(err)
		}
	}

	st := m.tw.State()
	m.Enabled = st.Enabled
	m.Mode = st.Mode.Bits()
	m.Debug = st.Debug
	m.Version = touchwake.Version
	m.Suspended = st.Suspended
	m.TouchOffDelay = st.TouchOffDelay
}

func (*Manager) GetInterfaceName() string {
	return dbusInterface
}

func (m *Manager) start() {
	keyevent1.AddKeyEventChannel(m.eventCh)
	m.wg.Add(1)
	go m.monitor()
}

func (m *Manager) destroy() {
	keyevent1.RemoveKeyEventChannel(m.eventCh)
	close(m.quit)
	m.wg.Wait()

	// no PrepareForSleep may reach the core once it is torn down
	m.loginManager.RemoveAllHandlers()
	m.login1Watch.destroy()
	if m.dsgTouchWake != nil {
		m.dsgTouchWake.RemoveAllHandlers()
	}

	m.tw.Destroy()
	if m.keySink != nil {
		err := m.keySink.Close()
		if err != nil {
			logger.Warning(err)
		}
	}
	err := m.sleepDelay.Release()
	if err != nil {
		logger.Warning(err)
	}
	m.systemSigLoop.Stop()
}

func (m *Manager) monitor() {
	defer m.wg.Done()
	for {
		select {
		case ev := <-m.eventCh:
			if dispatchKeyEvent(m.tw, ev) {
				m.syncProps()
			}
		case <-m.quit:
			logger.Debug("touchwake event monitor stop")
			return
		}
	}
}

type eventHandler interface {
	PowerKeyPressed()
	PowerKeyReleased()
	ProximityDetected()
	ProximityOff()
	TouchEvent(isRelease bool)
}

// dispatchKeyEvent feeds an input event to the classifier and reports
// whether it was consumed.
func dispatchKeyEvent(h eventHandler, ev *keyevent1.KeyEvent) bool {
	if ev.State == keyevent1.KEY_STATE_REPEAT {
		return false
	}
	pressed := ev.State == keyevent1.KEY_STATE_PRESSED

	switch ev.Type {
	case keyevent1.EV_KEY:
		switch ev.Keycode {
		case keyevent1.KEY_POWER:
			if pressed {
				h.PowerKeyPressed()
			} else {
				h.PowerKeyReleased()
			}
			return true
		case keyevent1.BTN_TOUCH:
			h.TouchEvent(!pressed)
			return true
		}
	case keyevent1.EV_SW:
		if ev.Keycode == keyevent1.SW_FRONT_PROXIMITY {
			if pressed {
				h.ProximityDetected()
			} else {
				h.ProximityOff()
			}
			return true
		}
	}
	return false
}

func (m *Manager) syncProps() {
	st := m.tw.State()
	m.PropsMu.Lock()
	m.setPropEnabled(st.Enabled)
	m.setPropMode(st.Mode.Bits())
	m.setPropDebug(st.Debug)
	m.setPropSuspended(st.Suspended)
	m.setPropTouchOffDelay(st.TouchOffDelay)
	m.PropsMu.Unlock()
}
