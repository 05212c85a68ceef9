// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

import (
	"sync"
	"time"
)

type delayedTaskState uint

const (
	delayedTaskStateReady delayedTaskState = iota
	delayedTaskStateRunning
	delayedTaskStateDone
)

func (s delayedTaskState) String() string {
	switch s {
	case delayedTaskStateReady:
		return "ready"
	case delayedTaskStateRunning:
		return "running"
	case delayedTaskStateDone:
		return "done"
	}
	return "unknown"
}

type delayedTask struct {
	name  string
	mu    sync.Mutex
	state delayedTaskState
	timer *time.Timer
	done  chan struct{}
}

func newDelayedTask(name string, delay time.Duration, fn func()) *delayedTask {
	t := &delayedTask{
		name:  name,
		state: delayedTaskStateReady,
		done:  make(chan struct{}),
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = time.AfterFunc(delay, func() {
		t.mu.Lock()
		if t.state != delayedTaskStateReady {
			// cancelled after the timer already fired
			t.mu.Unlock()
			return
		}
		t.state = delayedTaskStateRunning
		t.mu.Unlock()

		fn()

		t.mu.Lock()
		t.state = delayedTaskStateDone
		close(t.done)
		t.mu.Unlock()
	})
	return t
}

// Cancel reports whether fn was prevented from running. A task that is
// already running is left alone, use Wait to join it.
func (t *delayedTask) Cancel() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state != delayedTaskStateReady {
		return false
	}
	t.timer.Stop()
	t.state = delayedTaskStateDone
	close(t.done)
	logger.Debugf("delayedTask %s cancelled", t.name)
	return true
}

func (t *delayedTask) Wait() {
	<-t.done
}

func (t *delayedTask) CancelAndWait() {
	if !t.Cancel() {
		t.Wait()
	}
}

func (t *delayedTask) State() delayedTaskState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}
