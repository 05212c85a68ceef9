// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake1

import (
	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/dbusutil"

	"github.com/linuxdeepin/dde-touchwake/touchwake"
)

const (
	dbusServiceName = "org.deepin.dde.TouchWake1"
	dbusPath        = "/org/deepin/dde/TouchWake1"
	dbusInterface   = dbusServiceName
)

func (m *Manager) PowerKeyPressed() *dbus.Error {
	m.tw.PowerKeyPressed()
	return nil
}

func (m *Manager) PowerKeyReleased() *dbus.Error {
	m.tw.PowerKeyReleased()
	return nil
}

func (m *Manager) ProximityDetected() *dbus.Error {
	m.tw.ProximityDetected()
	return nil
}

func (m *Manager) ProximityOff() *dbus.Error {
	m.tw.ProximityOff()
	m.syncProps()
	return nil
}

func (m *Manager) TouchEvent(isRelease bool) *dbus.Error {
	m.tw.TouchEvent(isRelease)
	m.syncProps()
	return nil
}

func (m *Manager) IsSuspended() (bool, *dbus.Error) {
	return m.tw.IsSuspended(), nil
}

func (m *Manager) GetTouchOffDelay() (uint32, *dbus.Error) {
	return m.tw.GetTouchOffDelay(), nil
}

// DisplaySuspend is called by the display power manager before blanking.
func (m *Manager) DisplaySuspend() *dbus.Error {
	m.tw.OnDisplaySuspend()
	m.syncProps()
	return nil
}

func (m *Manager) DisplayResume() *dbus.Error {
	m.tw.OnDisplayResume()
	m.syncProps()
	return nil
}

func (m *Manager) SetEnabled(enabled bool) *dbus.Error {
	m.tw.Settings().SetEnabled(enabled)
	m.syncProps()
	return nil
}

func (m *Manager) SetMode(mode uint32) *dbus.Error {
	err := m.tw.Settings().SetMode(mode)
	if err != nil {
		return dbusutil.ToError(err)
	}
	m.syncProps()
	return nil
}

func (m *Manager) SetDebug(debug bool) *dbus.Error {
	m.tw.Settings().SetDebug(debug)
	m.syncProps()
	return nil
}

func (m *Manager) ReadAttribute(name string) (string, *dbus.Error) {
	value, err := m.tw.ReadAttribute(name)
	if err != nil {
		return "", dbusutil.ToError(err)
	}
	return value, nil
}

// WriteAttribute returns the number of bytes consumed, which is always the
// whole value.
func (m *Manager) WriteAttribute(name string, value string) (uint32, *dbus.Error) {
	n := m.tw.WriteAttribute(name, []byte(value))
	m.syncProps()
	return uint32(n), nil
}

func (m *Manager) ListAttributes() ([]string, *dbus.Error) {
	return touchwake.AttributeNames(), nil
}

func (m *Manager) writeEnabledCb(write *dbusutil.PropertyWrite) *dbus.Error {
	enabled, ok := write.Value.(bool)
	if !ok {
		return dbusutil.ToError(errInvalidPropType)
	}
	logger.Debug("set enabled", enabled)
	m.tw.Settings().SetEnabled(enabled)
	return nil
}

func (m *Manager) writeModeCb(write *dbusutil.PropertyWrite) *dbus.Error {
	mode, ok := write.Value.(uint32)
	if !ok {
		return dbusutil.ToError(errInvalidPropType)
	}
	logger.Debugf("set mode 0x%x", mode)
	err := m.tw.Settings().SetMode(mode)
	if err != nil {
		return dbusutil.ToError(err)
	}
	return nil
}

func (m *Manager) writeDebugCb(write *dbusutil.PropertyWrite) *dbus.Error {
	debug, ok := write.Value.(bool)
	if !ok {
		return dbusutil.ToError(errInvalidPropType)
	}
	m.tw.Settings().SetDebug(debug)
	return nil
}
