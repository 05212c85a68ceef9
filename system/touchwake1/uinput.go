// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake1

import (
	"sync"

	evdev "github.com/holoplot/go-evdev"
	"golang.org/x/xerrors"

	"github.com/linuxdeepin/dde-touchwake/system/keyevent1"
)

// linux/input.h
const busVirtual = 0x06

type eventWriter interface {
	WriteOne(event *evdev.InputEvent) error
	Close() error
}

// uinputKeySink emits the synthetic wake and sleep keys through a virtual
// keyboard.
type uinputKeySink struct {
	mu  sync.Mutex
	dev eventWriter
}

func newUinputKeySink() (*uinputKeySink, error) {
	dev, err := evdev.CreateDevice(keyevent1.VirtualDeviceName,
		evdev.InputID{
			BusType: busVirtual,
			Vendor:  0x1,
			Product: 0x1,
			Version: 1,
		},
		map[evdev.EvType][]evdev.EvCode{
			evdev.EV_KEY: {evdev.KEY_WAKEUP, evdev.KEY_SLEEP},
		})
	if err != nil {
		return nil, xerrors.Errorf("create uinput device: %w", err)
	}
	return &uinputKeySink{dev: dev}, nil
}

// Emit writes one key event followed by a SYN report.
func (s *uinputKeySink) Emit(code uint16, pressed bool) error {
	var value int32
	if pressed {
		value = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return xerrors.New("uinput device closed")
	}

	err := s.dev.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_KEY,
		Code:  evdev.EvCode(code),
		Value: value,
	})
	if err != nil {
		return xerrors.Errorf("write key %d: %w", code, err)
	}
	err = s.dev.WriteOne(&evdev.InputEvent{
		Type:  evdev.EV_SYN,
		Code:  evdev.SYN_REPORT,
		Value: 0,
	})
	if err != nil {
		return xerrors.Errorf("write syn: %w", err)
	}
	return nil
}

func (s *uinputKeySink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	err := s.dev.Close()
	s.dev = nil
	return err
}
