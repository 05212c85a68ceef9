// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package keyevent1

import (
	"github.com/linuxdeepin/dde-touchwake/loader"
	"github.com/linuxdeepin/go-lib/log"
)

const (
	dbusPath      = "/org/deepin/dde/TouchWake1/KeyEvent"
	dbusInterface = "org.deepin.dde.TouchWake1.KeyEvent"
)

var logger = log.NewLogger("daemon/system/keyevent")

func init() {
	loader.Register(NewDaemon(logger))
}

type Daemon struct {
	*loader.ModuleBase
	manager *Manager
}

func NewDaemon(logger *log.Logger) *Daemon {
	daemon := new(Daemon)
	daemon.ModuleBase = loader.NewModuleBase("keyevent", daemon, logger)
	return daemon
}

func (d *Daemon) GetDependencies() []string {
	return []string{}
}

// Start 导出对象并开始监控输入设备，服务名由 touchwake 模块申请
func (d *Daemon) Start() (err error) {
	service := loader.GetService()
	d.manager = newManager(service)

	err = service.Export(dbusPath, d.manager)
	if err != nil {
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
	d.manager.stop()
	d.manager = nil
	return nil
}
