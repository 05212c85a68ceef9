// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake1

import (
	"os"
	"path/filepath"
	"strings"

	evdev "github.com/holoplot/go-evdev"
	"github.com/linuxdeepin/go-lib/utils"
	"golang.org/x/xerrors"

	"github.com/linuxdeepin/dde-touchwake/system/keyevent1"
)

var sysClassInputDir = "/sys/class/input"

func writeSysfs(filename, value string) error {
	err := os.WriteFile(filename, []byte(value), 0644)
	if err != nil {
		return xerrors.Errorf("write %q to %s: %w", value, filename, err)
	}
	return nil
}

// sysfsTouchscreen stops and resumes scanning through the input
// "inhibited" attribute.
type sysfsTouchscreen struct {
	inhibitPath string
}

func (t *sysfsTouchscreen) EnableScanning() error {
	return writeSysfs(t.inhibitPath, "0")
}

func (t *sysfsTouchscreen) DisableScanning() error {
	return writeSysfs(t.inhibitPath, "1")
}

type sysfsProximity struct {
	enablePath string
}

func (p *sysfsProximity) ArmForWake() error {
	return writeSysfs(p.enablePath, "1")
}

func (p *sysfsProximity) DisarmForWake() error {
	return writeSysfs(p.enablePath, "0")
}

func hasCode(codes []evdev.EvCode, code uint32) bool {
	for _, c := range codes {
		if uint32(c) == code {
			return true
		}
	}
	return false
}

type inputCandidate struct {
	name     string
	path     string
	keys     []evdev.EvCode
	switches []evdev.EvCode
}

func listInputCandidates() []inputCandidate {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		logger.Warning("failed to list input devices:", err)
		return nil
	}

	var ret []inputCandidate
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			logger.Debug(err)
			continue
		}
		c := inputCandidate{
			name:     p.Name,
			path:     p.Path,
			keys:     dev.CapableEvents(evdev.EV_KEY),
			switches: dev.CapableEvents(evdev.EV_SW),
		}
		_ = dev.Close()
		if c.name == keyevent1.VirtualDeviceName {
			continue
		}
		ret = append(ret, c)
	}
	return ret
}

func isTouchscreen(c inputCandidate) bool {
	return hasCode(c.keys, keyevent1.BTN_TOUCH)
}

func isProximity(c inputCandidate) bool {
	return hasCode(c.switches, keyevent1.SW_FRONT_PROXIMITY)
}

// findInput picks the device called name, or the first device accepted by
// match when name is empty.
func findInput(candidates []inputCandidate, name string, match func(inputCandidate) bool) (inputCandidate, bool) {
	for _, c := range candidates {
		if name != "" {
			if strings.TrimSpace(c.name) == name {
				return c, true
			}
			continue
		}
		if match(c) {
			return c, true
		}
	}
	return inputCandidate{}, false
}

// sysfsDeviceAttr returns /sys/class/input/eventN/device/<attr> for
// /dev/input/eventN.
func sysfsDeviceAttr(devPath, attr string) string {
	return filepath.Join(sysClassInputDir, filepath.Base(devPath), "device", attr)
}

func newTouchscreen(cfg *DeviceConfig, candidates []inputCandidate) *sysfsTouchscreen {
	inhibitPath := cfg.Touchscreen.InhibitPath
	if inhibitPath == "" {
		c, ok := findInput(candidates, cfg.Touchscreen.Name, isTouchscreen)
		if !ok {
			logger.Warning("no touchscreen found")
			return nil
		}
		inhibitPath = sysfsDeviceAttr(c.path, "inhibited")
		logger.Infof("touchscreen %q at %s", c.name, c.path)
	}
	if !utils.IsFileExist(inhibitPath) {
		logger.Warning("touchscreen inhibit control not available:", inhibitPath)
		return nil
	}
	return &sysfsTouchscreen{inhibitPath: inhibitPath}
}

func newProximity(cfg *DeviceConfig, candidates []inputCandidate) *sysfsProximity {
	enablePath := cfg.Proximity.EnablePath
	if enablePath == "" {
		// the switch events alone are enough, nothing to arm
		if c, ok := findInput(candidates, cfg.Proximity.Name, isProximity); ok {
			logger.Infof("proximity sensor %q at %s", c.name, c.path)
		}
		return nil
	}
	if !utils.IsFileExist(enablePath) {
		logger.Warning("proximity enable control not available:", enablePath)
		return nil
	}
	return &sysfsProximity{enablePath: enablePath}
}
