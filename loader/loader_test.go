// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package loader

import (
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/linuxdeepin/go-lib/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startRecorder struct {
	mu    sync.Mutex
	order []string
}

func (r *startRecorder) add(name string) {
	r.mu.Lock()
	r.order = append(r.order, name)
	r.mu.Unlock()
}

func (r *startRecorder) index(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, n := range r.order {
		if n == name {
			return i
		}
	}
	return -1
}

type Test_Module struct {
	*ModuleBase
	dependencies string
	startErr     error
	rec          *startRecorder
}

type testItem struct {
	input  Modules
	output error
}

func NewTestModule(name, dependencies string, rec *startRecorder) *Test_Module {
	daemon := new(Test_Module)
	logger := log.NewLogger(name)
	daemon.ModuleBase = NewModuleBase(name, daemon, logger)
	daemon.dependencies = dependencies
	daemon.rec = rec
	return daemon
}

func (d *Test_Module) GetDependencies() []string {
	if d.dependencies == "" {
		return nil
	}
	return strings.Split(d.dependencies, " ")
}

func (d *Test_Module) Start() error {
	time.Sleep(time.Duration(rand.Int63n(int64(20 * time.Millisecond))))
	if d.rec != nil {
		d.rec.add(d.Name())
	}
	return d.startErr
}

func (d *Test_Module) Stop() error {
	return nil
}

func resetLoader() {
	_loader = &Loader{
		modules: Modules{},
		log:     log.NewLogger("daemon/loader"),
	}
	loaderInitializer.Do(func() {})
}

func Test_Loader(t *testing.T) {
	testItems := []testItem{
		{
			Modules{
				"1": NewTestModule("1", "", nil),
				"2": NewTestModule("2", "", nil),
				"3": NewTestModule("3", "", nil),
				"4": NewTestModule("4", "", nil),
				"5": NewTestModule("5", "", nil),
				"6": NewTestModule("6", "", nil),
			},
			nil,
		},
		{
			Modules{
				"1": NewTestModule("1", "2", nil),
				"2": NewTestModule("2", "3", nil),
				"3": NewTestModule("3", "4", nil),
				"4": NewTestModule("4", "5", nil),
				"5": NewTestModule("5", "6", nil),
				"6": NewTestModule("6", "", nil),
			},
			nil,
		},
		{
			Modules{
				"1": NewTestModule("1", "2", nil),
				"2": NewTestModule("2", "3", nil),
				"3": NewTestModule("3", "4", nil),
				"4": NewTestModule("4", "5", nil),
				"5": NewTestModule("5", "6", nil),
				"6": NewTestModule("6", "1", nil),
			},
			&EnableError{Code: ErrorCircleDependencies},
		},
	}
	for _, data := range testItems {
		resetLoader()
		allModules := []string{}
		for name, module := range data.input {
			Register(module)
			allModules = append(allModules, name)
		}
		err := EnableModules(allModules, nil, EnableFlagNone)
		assert.Equal(t, data.output, err)
	}
}

func Test_LoaderStartOrder(t *testing.T) {
	resetLoader()
	rec := &startRecorder{}
	Register(NewTestModule("touchwake", "keyevent", rec))
	Register(NewTestModule("keyevent", "", rec))

	err := StartAll()
	require.NoError(t, err)
	assert.Less(t, rec.index("keyevent"), rec.index("touchwake"))
	assert.True(t, GetModule("touchwake").IsEnable())

	StopAll()
	assert.False(t, GetModule("touchwake").IsEnable())
	assert.False(t, GetModule("keyevent").IsEnable())
}

func Test_LoaderMissingModule(t *testing.T) {
	resetLoader()
	Register(NewTestModule("touchwake", "keyevent", nil))

	err := EnableModules([]string{"touchwake"}, nil, EnableFlagNone)
	assert.Equal(t, &EnableError{ModuleName: "keyevent", Code: ErrorMissingModule}, err)

	err = EnableModules([]string{"touchwake"}, nil, EnableFlagIgnoreMissingModule)
	assert.NoError(t, err)
}

func Test_LoaderFailedDependency(t *testing.T) {
	resetLoader()
	failing := NewTestModule("keyevent", "", nil)
	failing.startErr = errors.New("no input devices")
	Register(failing)
	Register(NewTestModule("touchwake", "keyevent", nil))

	// a failed dependency must not block its dependents forever
	err := StartAll()
	assert.NoError(t, err)
	assert.False(t, GetModule("keyevent").IsEnable())
	assert.True(t, GetModule("touchwake").IsEnable())
}
