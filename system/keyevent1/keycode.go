// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyevent1

import evdev "github.com/holoplot/go-evdev"

// nolint
// 按键状态
const (
	KEY_STATE_RELEASED = 0 // 松开
	KEY_STATE_PRESSED  = 1 // 按下
	KEY_STATE_REPEAT   = 2
)

// nolint
const (
	EV_KEY = uint16(evdev.EV_KEY)
	EV_SW  = uint16(evdev.EV_SW)
)

// nolint
const (
	KEY_POWER  = uint32(evdev.KEY_POWER)
	KEY_SLEEP  = uint32(evdev.KEY_SLEEP)
	KEY_WAKEUP = uint32(evdev.KEY_WAKEUP)
	BTN_TOUCH  = uint32(evdev.BTN_TOUCH)

	// linux/input-event-codes.h
	SW_FRONT_PROXIMITY = 0x0b
)
