// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

import (
	"errors"
	"sync"
	"time"
)

// linux input key codes
const (
	KeySleep  uint16 = 142
	KeyWakeUp uint16 = 143
)

const (
	DefaultKeyDelay = 50 * time.Millisecond

	injectQueueSize = 8
)

var ErrNoKeyTarget = errors.New("no power key target registered")

func keyName(code uint16) string {
	switch code {
	case KeyWakeUp:
		return "wakeup"
	case KeySleep:
		return "sleep"
	}
	return "unknown"
}

// KeyInjector emits press/release pairs on the registered sink. Pairs from
// concurrent callers never interleave.
type KeyInjector struct {
	// held for a whole press/release pair
	mu sync.Mutex

	targetMu sync.RWMutex
	target   KeySink

	delay time.Duration

	queue chan uint16
	quit  chan struct{}
	wg    sync.WaitGroup
}

func newKeyInjector(delay time.Duration) *KeyInjector {
	if delay <= 0 {
		delay = DefaultKeyDelay
	}
	return &KeyInjector{
		delay: delay,
		queue: make(chan uint16, injectQueueSize),
		quit:  make(chan struct{}),
	}
}

func (inj *KeyInjector) SetTarget(sink KeySink) {
	inj.targetMu.Lock()
	inj.target = sink
	inj.targetMu.Unlock()
}

func (inj *KeyInjector) getTarget() KeySink {
	inj.targetMu.RLock()
	defer inj.targetMu.RUnlock()
	return inj.target
}

// Inject blocks for two key delays.
func (inj *KeyInjector) Inject(code uint16) error {
	inj.mu.Lock()
	defer inj.mu.Unlock()

	target := inj.getTarget()
	if target == nil {
		return ErrNoKeyTarget
	}

	logger.Debugf("emulating %s press", keyName(code))
	err := target.Emit(code, true)
	if err != nil {
		return err
	}
	time.Sleep(inj.delay)

	logger.Debugf("emulating %s release", keyName(code))
	err = target.Emit(code, false)
	time.Sleep(inj.delay)
	return err
}

// Schedule hands code to the background worker and never blocks. It
// returns false if the request was dropped.
func (inj *KeyInjector) Schedule(code uint16) bool {
	select {
	case <-inj.quit:
		return false
	default:
	}

	select {
	case inj.queue <- code:
		return true
	default:
		logger.Warningf("injection queue full, drop %s key", keyName(code))
		return false
	}
}

func (inj *KeyInjector) start() {
	inj.wg.Add(1)
	go inj.loop()
}

func (inj *KeyInjector) loop() {
	defer inj.wg.Done()
	for {
		select {
		case code := <-inj.queue:
			err := inj.Inject(code)
			if err != nil {
				logger.Warningf("failed to inject %s key: %v", keyName(code), err)
			}
		case <-inj.quit:
			logger.Debug("key injector stop")
			return
		}
	}
}

func (inj *KeyInjector) stop() {
	close(inj.quit)
	inj.wg.Wait()
}
