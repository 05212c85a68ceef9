// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

import (
	"errors"
	"fmt"
	"sync"

	"github.com/linuxdeepin/go-lib/log"
)

// mode bits
const (
	ModeTouchWake        uint32 = 0x01
	ModeProximityWake    uint32 = 0x02
	ModeLongTouchResleep uint32 = 0x04
	ModeRequireProximity uint32 = 0x08

	modeMask = ModeTouchWake | ModeProximityWake | ModeLongTouchResleep | ModeRequireProximity

	DefaultMode = ModeTouchWake | ModeProximityWake | ModeLongTouchResleep
)

const DefaultTouchOffDelay uint32 = 30 * 1000 // ms

var ErrModeOutOfRange = errors.New("mode out of range")

type ModeConfig struct {
	KeepTouchOnWake          bool
	UseProximityWake         bool
	LongTouchResleep         bool
	RequireProximityForTouch bool
}

func ParseMode(bits uint32) (ModeConfig, error) {
	if bits&^modeMask != 0 {
		return ModeConfig{}, fmt.Errorf("%w: %#x", ErrModeOutOfRange, bits)
	}
	return ModeConfig{
		KeepTouchOnWake:          bits&ModeTouchWake != 0,
		UseProximityWake:         bits&ModeProximityWake != 0,
		LongTouchResleep:         bits&ModeLongTouchResleep != 0,
		RequireProximityForTouch: bits&ModeRequireProximity != 0,
	}, nil
}

func (m ModeConfig) Bits() uint32 {
	var bits uint32
	if m.KeepTouchOnWake {
		bits |= ModeTouchWake
	}
	if m.UseProximityWake {
		bits |= ModeProximityWake
	}
	if m.LongTouchResleep {
		bits |= ModeLongTouchResleep
	}
	if m.RequireProximityForTouch {
		bits |= ModeRequireProximity
	}
	return bits
}

// Settings is the process wide configuration. It holds no logic beyond
// storage and validation.
type Settings struct {
	mu            sync.RWMutex
	enabled       bool
	mode          ModeConfig
	debug         bool
	touchOffDelay uint32
}

func newSettings() *Settings {
	mode, _ := ParseMode(DefaultMode)
	return &Settings{
		mode:          mode,
		touchOffDelay: DefaultTouchOffDelay,
	}
}

func (s *Settings) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

func (s *Settings) SetEnabled(enabled bool) {
	s.mu.Lock()
	s.enabled = enabled
	s.mu.Unlock()
	logger.Debug("enabled set to", enabled)
}

func (s *Settings) Mode() ModeConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetMode replaces the policy bits verbatim. Unknown bits are rejected and
// the previous mode is kept.
func (s *Settings) SetMode(bits uint32) error {
	mode, err := ParseMode(bits)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.mode = mode
	s.mu.Unlock()
	logger.Debugf("mode set to %#x", bits)
	return nil
}

func (s *Settings) Debug() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debug
}

func (s *Settings) SetDebug(debug bool) {
	s.mu.Lock()
	s.debug = debug
	s.mu.Unlock()

	if debug {
		logger.SetLogLevel(log.LevelDebug)
	} else {
		logger.SetLogLevel(log.LevelInfo)
	}
}

func (s *Settings) TouchOffDelay() uint32 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.touchOffDelay
}

func (s *Settings) snapshot() (enabled bool, mode ModeConfig) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled, s.mode
}
