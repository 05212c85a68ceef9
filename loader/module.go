// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"fmt"
	"sync"

	"github.com/linuxdeepin/go-lib/log"
)

type Module interface {
	Name() string
	IsEnable() bool
	Enable(bool) error
	GetDependencies() []string
	SetLogLevel(log.Priority)
	LogLevel() log.Priority
	WaitEnable()
	ModuleImpl
}

type Modules map[string]Module

type ModuleImpl interface {
	Start() error // keep Start synchronous and return the error, the loader logs it
	Stop() error
}

type ModuleBase struct {
	impl    ModuleImpl
	enabled bool
	name    string
	log     *log.Logger

	mu        sync.Mutex
	startOnce sync.Once
	started   chan struct{}
}

func NewModuleBase(name string, impl ModuleImpl, logger *log.Logger) *ModuleBase {
	return &ModuleBase{
		name:    name,
		impl:    impl,
		log:     logger,
		started: make(chan struct{}),
	}
}

func (d *ModuleBase) doEnable(enable bool) error {
	if d.impl != nil {
		fn := d.impl.Stop
		if enable {
			fn = d.impl.Start
		}

		if err := fn(); err != nil {
			if enable {
				// dependents must not wait forever on a module that failed to start
				d.markStarted()
			}
			return err
		}
	}
	if enable {
		d.markStarted()
	}
	d.enabled = enable
	return nil
}

func (d *ModuleBase) markStarted() {
	d.startOnce.Do(func() {
		close(d.started)
	})
}

func (d *ModuleBase) Enable(enable bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.enabled == enable {
		return fmt.Errorf("%s daemon is already %s", d.name, enableString(enable))
	}
	return d.doEnable(enable)
}

func enableString(enable bool) string {
	if enable {
		return "started"
	}
	return "stopped"
}

func (d *ModuleBase) IsEnable() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.enabled
}

// WaitEnable blocks until the first Start attempt has returned.
func (d *ModuleBase) WaitEnable() {
	<-d.started
}

func (d *ModuleBase) Name() string {
	return d.name
}

func (d *ModuleBase) SetLogLevel(pri log.Priority) {
	d.log.SetLogLevel(pri)
}

func (d *ModuleBase) LogLevel() log.Priority {
	return d.log.GetLogLevel()
}
