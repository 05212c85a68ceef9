// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake1

import (
	"errors"

	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"

	"github.com/linuxdeepin/dde-touchwake/loader"
)

var logger = log.NewLogger("daemon/system/touchwake")

var errInvalidPropType = errors.New("invalid property type")

func init() {
	loader.Register(NewDaemon(logger))
}

type Daemon struct {
	*loader.ModuleBase
	manager *Manager
}

func NewDaemon(logger *log.Logger) *Daemon {
	daemon := new(Daemon)
	daemon.ModuleBase = loader.NewModuleBase("touchwake", daemon, logger)
	return daemon
}

func (d *Daemon) GetDependencies() []string {
	return []string{"keyevent"}
}

func (d *Daemon) Start() (err error) {
	service := loader.GetService()
	d.manager, err = newManager(service)
	if err != nil {
		return
	}

	serverObj, err := service.NewServerObject(dbusPath, d.manager)
	if err != nil {
		d.manager.destroy()
		d.manager = nil
		return
	}

	// 属性写入前触发的回调函数，非法值在这里被拒绝
	err = serverObj.SetWriteCallback(d.manager, "Enabled", d.manager.writeEnabledCb)
	if err != nil {
		logger.Warning(err)
	}
	err = serverObj.SetWriteCallback(d.manager, "Mode", d.manager.writeModeCb)
	if err != nil {
		logger.Warning(err)
	}
	err = serverObj.SetWriteCallback(d.manager, "Debug", d.manager.writeDebugCb)
	if err != nil {
		logger.Warning(err)
	}

	err = serverObj.ConnectChanged(d.manager, "Mode", func(change *dbusutil.PropertyChanged) {
		logger.Infof("mode changed to 0x%x", change.Value)
	})
	if err != nil {
		logger.Warning(err)
	}

	err = serverObj.Export()
	if err != nil {
		d.manager.destroy()
		d.manager = nil
		return
	}

	err = service.RequestName(dbusServiceName)
	if err != nil {
		_ = service.StopExport(d.manager)
		d.manager.destroy()
		d.manager = nil
		return
	}

	d.manager.start()
	return
}

func (d *Daemon) Stop() error {
	if d.manager == nil {
		return nil
	}
	service := loader.GetService()
	err := service.StopExport(d.manager)
	if err != nil {
		logger.Warning(err)
	}

	d.manager.destroy()
	d.manager = nil
	return nil
}
