// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake1

import (
	"sync"

	"github.com/godbus/dbus/v5"
	ofdbus "github.com/linuxdeepin/go-dbus-factory/system/org.freedesktop.dbus"
	login1 "github.com/linuxdeepin/go-dbus-factory/system/org.freedesktop.login1"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"golang.org/x/sys/unix"
	"golang.org/x/xerrors"
)

const login1ServiceName = "org.freedesktop.login1"

const (
	inhibitModeBlock = "block"
	inhibitModeDelay = "delay"
)

// logindInhibitor holds one logind sleep inhibitor fd. In block mode it is
// the wake lock kept while the touchscreen scans with the display off, in
// delay mode it holds off system sleep until the suspend work is done.
type logindInhibitor struct {
	mu      sync.Mutex
	mode    string
	fd      int
	inhibit func() (int, error)
	closeFd func(int) error
}

func newLogindInhibitor(loginManager login1.Manager, mode, why string) *logindInhibitor {
	return &logindInhibitor{
		mode: mode,
		fd:   -1,
		inhibit: func() (int, error) {
			fd, err := loginManager.Inhibit(0, "sleep", dbusServiceName, why, mode)
			return int(fd), err
		},
		closeFd: unix.Close,
	}
}

// caller holds l.mu
func (l *logindInhibitor) take() error {
	fd, err := l.inhibit()
	if err != nil {
		return xerrors.Errorf("inhibit sleep (%s): %w", l.mode, err)
	}
	l.fd = fd
	return nil
}

func (l *logindInhibitor) Acquire() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fd != -1 {
		return nil
	}
	logger.Debugf("block sleep (%s)", l.mode)
	return l.take()
}

func (l *logindInhibitor) Release() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fd == -1 {
		return nil
	}
	logger.Debugf("unblock sleep (%s)", l.mode)
	err := l.closeFd(l.fd)
	l.fd = -1
	if err != nil {
		return xerrors.Errorf("close inhibit fd: %w", err)
	}
	return nil
}

func (l *logindInhibitor) held() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.fd != -1
}

// an inhibitor taken before logind restarted is gone, take it again
func (l *logindInhibitor) reacquire() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fd == -1 {
		return
	}
	err := l.closeFd(l.fd)
	l.fd = -1
	if err != nil {
		logger.Warning("failed to close fd:", err)
	}
	err = l.take()
	if err != nil {
		logger.Warning(err)
	}
}

// login1Watcher re-takes the inhibitors when logind restarts.
type login1Watcher struct {
	dbusObj ofdbus.DBus
}

func newLogin1Watcher(conn *dbus.Conn, sigLoop *dbusutil.SignalLoop, inhibitors ...*logindInhibitor) *login1Watcher {
	w := &login1Watcher{
		dbusObj: ofdbus.NewDBus(conn),
	}
	w.dbusObj.InitSignalExt(sigLoop, true)
	_, err := w.dbusObj.ConnectNameOwnerChanged(func(name string, oldOwner string, newOwner string) {
		if name == login1ServiceName && newOwner != "" && oldOwner == "" {
			for _, l := range inhibitors {
				l.reacquire()
			}
		}
	})
	if err != nil {
		logger.Warning(err)
	}
	return w
}

func (w *login1Watcher) destroy() {
	w.dbusObj.RemoveAllHandlers()
}

type displayTransitions interface {
	OnDisplaySuspend()
	OnDisplayResume()
}

// sleepHandler runs the display suspend work while logind waits on the
// delay inhibitor, then lets the system go to sleep. After wake-up the
// inhibitor is taken again for the next cycle.
type sleepHandler struct {
	tw        displayTransitions
	delay     *logindInhibitor
	onChanged func()
}

func (h *sleepHandler) handlePrepareForSleep(before bool) {
	if before {
		h.tw.OnDisplaySuspend()
		if h.onChanged != nil {
			h.onChanged()
		}
		err := h.delay.Release()
		if err != nil {
			logger.Warning(err)
		}
		return
	}

	h.tw.OnDisplayResume()
	if h.onChanged != nil {
		h.onChanged()
	}
	err := h.delay.Acquire()
	if err != nil {
		logger.Warning(err)
	}
}
