// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyevent1

import (
	"github.com/linuxdeepin/go-lib/dbusutil"
)

//go:generate dbusutil-gen em -type Manager

type Manager struct {
	service *dbusutil.Service
	quit    chan bool
	ch      chan *KeyEvent

	// nolint
	signals *struct {
		KeyEvent struct {
			keycode uint32
			pressed bool // true:按下事件，false松开事件
		}
	}
}

// 允许发送的按键列表
var allowList = map[uint32]bool{
	KEY_POWER:  true,
	KEY_SLEEP:  true,
	KEY_WAKEUP: true,
	BTN_TOUCH:  true,
}

func newManager(service *dbusutil.Service) *Manager {
	return &Manager{
		service: service,
		quit:    make(chan bool),
		ch:      make(chan *KeyEvent, 64),
	}
}

func (*Manager) GetInterfaceName() string {
	return dbusInterface
}

func (m *Manager) start() {
	AddKeyEventChannel(m.ch)
	startKeyEventMonitor()

	go m.monitor()
}

func (m *Manager) stop() {
	stopKeyEventMonitor()
	RemoveKeyEventChannel(m.ch)
	m.quit <- true
}

func (m *Manager) monitor() {
	for {
		select {
		case ev := <-m.ch:
			logger.Debugf("event type(%d) keycode(%d) state(%v)", ev.Type, ev.Keycode, ev.State)
			m.handleEvent(ev)
		case <-m.quit:
			logger.Debug("key event monitor stop")
			return
		}
	}
}

func shouldEmit(ev *KeyEvent) bool {
	if ev.Type != EV_KEY || ev.State == KEY_STATE_REPEAT {
		return false
	}
	return allowList[ev.Keycode]
}

func (m *Manager) handleEvent(ev *KeyEvent) {
	// 发送DBus signal通知按键事件
	if shouldEmit(ev) {
		m.emitKeyEvent(ev)
	}
}

func (m *Manager) emitKeyEvent(ev *KeyEvent) {
	if m.service == nil {
		return
	}
	err := m.service.Emit(m, "KeyEvent", ev.Keycode, ev.State == KEY_STATE_PRESSED)
	if err != nil {
		logger.Warning(err)
	}
}
