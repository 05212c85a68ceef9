// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyevent1

import "sync"

type KeyEvent struct {
	Type    uint16 // EV_KEY, EV_SW
	Keycode uint32 // 按键码
	State   uint32 // KEY_STATE_RELEASED,KEY_STATE_PRESSED,KEY_STATE_REPEAT
}

var (
	eventChanListMu sync.Mutex
	eventChanList   []chan *KeyEvent
)

// AddKeyEventChannel 添加channel用于读取按键事件，channel写满时事件被丢弃
func AddKeyEventChannel(ch chan *KeyEvent) {
	eventChanListMu.Lock()
	eventChanList = append(eventChanList, ch)
	eventChanListMu.Unlock()
}

func RemoveKeyEventChannel(ch chan *KeyEvent) {
	eventChanListMu.Lock()
	defer eventChanListMu.Unlock()
	for i, c := range eventChanList {
		if c == ch {
			eventChanList = append(eventChanList[:i], eventChanList[i+1:]...)
			return
		}
	}
}

func pushKeyEvent(typ uint16, keycode uint32, state uint32) {
	event := &KeyEvent{
		Type:    typ,
		Keycode: keycode,
		State:   state,
	}

	eventChanListMu.Lock()
	defer eventChanListMu.Unlock()
	for _, ch := range eventChanList {
		select {
		case ch <- event:
		default:
			logger.Debugf("drop event type(%d) keycode(%d), channel full", typ, keycode)
		}
	}
}
