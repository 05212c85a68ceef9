// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	// modules:
	_ "github.com/linuxdeepin/dde-touchwake/system/keyevent1"
	_ "github.com/linuxdeepin/dde-touchwake/system/touchwake1"

	"github.com/linuxdeepin/dde-touchwake/loader"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/log"
)

const dbusServiceName = "org.deepin.dde.TouchWake1"

var logger = log.NewLogger("daemon/dde-touchwake-daemon")

var optDebug bool

func main() {
	flag.BoolVar(&optDebug, "debug", false, "debug mode")
	flag.Parse()

	service, err := dbusutil.NewSystemService()
	if err != nil {
		logger.Fatal("failed to new system service", err)
	}

	hasOwner, err := service.NameHasOwner(dbusServiceName)
	if err != nil {
		logger.Fatal("failed to call NameHasOwner:", err)
	}
	if hasOwner {
		logger.Warningf("name %q already has the owner", dbusServiceName)
		os.Exit(1)
	}

	logger.SetRestartCommand("/usr/lib/deepin-daemon/dde-touchwake-daemon")

	if optDebug {
		logger.SetLogLevel(log.LevelDebug)
		loader.ToggleLogDebug(true)
	}

	loader.SetService(service)
	err = loader.StartAll()
	if err != nil {
		logger.Warning(err)
	}
	defer loader.StopAll()

	// the touchscreen must not stay inhibited after the daemon is gone
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal", sig)
		service.Quit()
	}()

	service.Wait()
}
