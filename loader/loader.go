// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"fmt"
	"sync"
	"time"

	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

type EnableFlag int

const (
	EnableFlagNone EnableFlag = 1 << iota
	EnableFlagIgnoreMissingModule
	EnableFlagForceStart
)

func (flags EnableFlag) HasFlag(flag EnableFlag) bool {
	return flags&flag != 0
}

const (
	ErrorNoDependencies int = iota
	ErrorCircleDependencies
	ErrorMissingModule
	ErrorInternalError
	ErrorConflict
)

type EnableError struct {
	ModuleName string
	Code       int
	detail     string
}

func (e *EnableError) Error() string {
	switch e.Code {
	case ErrorNoDependencies:
		return fmt.Sprintf("%s's dependencies is not meet, %s is need", e.ModuleName, e.detail)
	case ErrorCircleDependencies:
		return "dependency circle"
	case ErrorMissingModule:
		return fmt.Sprintf("%s is missing", e.ModuleName)
	case ErrorInternalError:
		return fmt.Sprintf("%s started failed: %s", e.ModuleName, e.detail)
	case ErrorConflict:
		return fmt.Sprintf("tring to enable disabled module(%s)", e.ModuleName)
	}
	panic("EnableError: Unknown Error, Should not be reached")
}

type Loader struct {
	modules Modules
	log     *log.Logger
	lock    sync.Mutex
	service *dbusutil.Service

	// start order of the last EnableModules call, used to stop in reverse
	order []string
}

func (l *Loader) SetLogLevel(pri log.Priority) {
	l.log.SetLogLevel(pri)

	l.lock.Lock()
	defer l.lock.Unlock()

	for _, module := range l.modules {
		module.SetLogLevel(pri)
	}
}

func (l *Loader) AddModule(m Module) {
	l.lock.Lock()
	defer l.lock.Unlock()
	name := m.Name()
	_, exist := l.modules[name]
	if exist {
		l.log.Debug("Register", name, "is already registered")
		return
	}
	l.log.Debug("Register module:", name)
	l.modules[name] = m
}

func (l *Loader) DeleteModule(name string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	delete(l.modules, name)
}

func (l *Loader) List() []Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	modules := make([]Module, 0, len(l.modules))
	for _, m := range l.modules {
		modules = append(modules, m)
	}
	return modules
}

func (l *Loader) GetModule(name string) Module {
	l.lock.Lock()
	defer l.lock.Unlock()
	return l.modules[name]
}

// l.modules is only read here, EnableModules holds l.lock meanwhile
func (l *Loader) waitDependencies(module Module) {
	for _, dependencyName := range module.GetDependencies() {
		dep, ok := l.modules[dependencyName]
		if !ok {
			continue
		}
		dep.WaitEnable()
	}
}

func (l *Loader) EnableModules(enablingModules []string, disableModules []string, flag EnableFlag) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	startTime := time.Now()
	builder := NewDAGBuilder(l, enablingModules, disableModules, flag)
	dag, err := builder.Execute()
	if err != nil {
		return err
	}
	l.log.Infof("build dag done, cost %s", time.Since(startTime))

	nodes, ok := dag.TopologicalDag()
	if !ok {
		return &EnableError{Code: ErrorCircleDependencies}
	}
	l.log.Infof("topo sort done, cost add up to %s", time.Since(startTime))

	var enabling []Module
	for _, node := range nodes {
		if node == nil {
			continue
		}
		module, ok := l.modules[node.ID]
		if !ok {
			continue
		}
		enabling = append(enabling, module)
		l.order = append(l.order, node.ID)

		go func(name string, module Module) {
			l.log.Info("enable module", name)
			startTime := time.Now()

			l.waitDependencies(module)
			l.log.Info("module", name, "wait done, cost", time.Since(startTime))

			err := module.Enable(true)
			duration := time.Since(startTime)
			if err != nil {
				l.log.Errorf("enable module %s failed: %s, cost %s", name, err, duration)
			} else {
				l.log.Infof("enable module %s done cost %s", name, duration)
			}
		}(node.ID, module)
	}

	for _, m := range enabling {
		m.WaitEnable()
	}

	l.log.Infof("enable modules done, cost add up to %s", time.Since(startTime))
	return nil
}

// StopModules stops the started modules, dependents first.
func (l *Loader) StopModules() {
	l.lock.Lock()
	defer l.lock.Unlock()

	for i := len(l.order) - 1; i >= 0; i-- {
		module, ok := l.modules[l.order[i]]
		if !ok || !module.IsEnable() {
			continue
		}
		err := module.Enable(false)
		if err != nil {
			l.log.Warning(err)
		}
	}
	l.order = nil
}
