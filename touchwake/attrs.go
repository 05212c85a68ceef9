// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/linuxdeepin/go-lib/strv"
)

const (
	AttrEnabled       = "enabled"
	AttrMode          = "mode"
	AttrVersion       = "version"
	AttrDebug         = "debug"
	AttrTouchOffDelay = "touchoff_delay"
	AttrState         = "state"
)

var (
	ErrUnknownAttribute  = errors.New("unknown attribute")
	ErrReadOnlyAttribute = errors.New("read-only attribute")
)

var attributes = strv.Strv{
	AttrEnabled,
	AttrMode,
	AttrVersion,
	AttrDebug,
	AttrTouchOffDelay,
	AttrState,
}

var writableAttributes = strv.Strv{
	AttrEnabled,
	AttrMode,
	AttrDebug,
}

func AttributeNames() []string {
	return append([]string(nil), attributes...)
}

func IsWritableAttribute(name string) bool {
	return writableAttributes.Contains(name)
}

func boolAttr(v bool) string {
	if v {
		return "1\n"
	}
	return "0\n"
}

func (tw *TouchWake) ReadAttribute(name string) (string, error) {
	switch name {
	case AttrEnabled:
		return boolAttr(tw.settings.Enabled()), nil
	case AttrMode:
		return fmt.Sprintf("%d\n", tw.settings.Mode().Bits()), nil
	case AttrVersion:
		return Version + "\n", nil
	case AttrDebug:
		return boolAttr(tw.settings.Debug()), nil
	case AttrTouchOffDelay:
		return fmt.Sprintf("%d\n", tw.settings.TouchOffDelay()), nil
	case AttrState:
		st := tw.State()
		return fmt.Sprintf("timed_out : %s\nprox_near : %s\n",
			strings.TrimSpace(boolAttr(st.TimedOut)), strings.TrimSpace(boolAttr(st.ProximityNear))), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
}

func parseUintAttr(buf []byte) (uint32, error) {
	fields := strings.Fields(string(buf))
	if len(fields) == 0 {
		return 0, errors.New("empty input")
	}
	v, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func parseBoolAttr(buf []byte) (bool, error) {
	v, err := parseUintAttr(buf)
	if err != nil {
		return false, err
	}
	switch v {
	case 0:
		return false, nil
	case 1:
		return true, nil
	}
	return false, fmt.Errorf("invalid input range %d", v)
}

// WriteAttribute always reports the whole buffer as consumed. Malformed or
// out of range input is dropped, the previous value is kept and a debug
// diagnostic is logged.
func (tw *TouchWake) WriteAttribute(name string, buf []byte) int {
	err := tw.writeAttribute(name, buf)
	if err != nil {
		logger.Debugf("write attribute %s: %v", name, err)
	}
	return len(buf)
}

func (tw *TouchWake) writeAttribute(name string, buf []byte) error {
	switch name {
	case AttrEnabled:
		enabled, err := parseBoolAttr(buf)
		if err != nil {
			return err
		}
		tw.settings.SetEnabled(enabled)
		return nil

	case AttrMode:
		bits, err := parseUintAttr(buf)
		if err != nil {
			return err
		}
		return tw.settings.SetMode(bits)

	case AttrDebug:
		debug, err := parseBoolAttr(buf)
		if err != nil {
			return err
		}
		tw.settings.SetDebug(debug)
		return nil
	}

	if attributes.Contains(name) {
		return ErrReadOnlyAttribute
	}
	return ErrUnknownAttribute
}
