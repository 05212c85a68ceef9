// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/linuxdeepin/go-lib/log"
)

const (
	dbusServiceName = "org.deepin.dde.TouchWake1"
	dbusPath        = "/org/deepin/dde/TouchWake1"
	dbusInterface   = dbusServiceName
)

var logger = log.NewLogger("daemon/touchwake-ctl")

var (
	optGet     string
	optSet     string
	optList    bool
	optSuspend bool
	optResume  bool
	optDebug   bool
)

type client struct {
	obj dbus.BusObject
}

func newClient() (*client, error) {
	conn, err := dbus.SystemBus()
	if err != nil {
		return nil, err
	}
	return &client{obj: conn.Object(dbusServiceName, dbusPath)}, nil
}

func (c *client) call(method string, args ...interface{}) *dbus.Call {
	return c.obj.Call(dbusInterface+"."+method, 0, args...)
}

func (c *client) get(name string) (string, error) {
	var value string
	err := c.call("ReadAttribute", name).Store(&value)
	return value, err
}

func (c *client) set(name, value string) (uint32, error) {
	var n uint32
	err := c.call("WriteAttribute", name, value).Store(&n)
	return n, err
}

func (c *client) list() ([]string, error) {
	var names []string
	err := c.call("ListAttributes").Store(&names)
	return names, err
}

// parseAssignment splits "key=value".
func parseAssignment(arg string) (string, string, error) {
	idx := strings.Index(arg, "=")
	if idx <= 0 {
		return "", "", errors.New("expect key=value")
	}
	return arg[:idx], arg[idx+1:], nil
}

func run(c *client) error {
	switch {
	case optList:
		names, err := c.list()
		if err != nil {
			return err
		}
		for _, name := range names {
			value, err := c.get(name)
			if err != nil {
				logger.Debug(err)
				continue
			}
			fmt.Printf("%s: %s", name, value)
			if !strings.HasSuffix(value, "\n") {
				fmt.Println()
			}
		}
	case optGet != "":
		value, err := c.get(optGet)
		if err != nil {
			return err
		}
		fmt.Print(value)
	case optSet != "":
		name, value, err := parseAssignment(optSet)
		if err != nil {
			return err
		}
		n, err := c.set(name, value)
		if err != nil {
			return err
		}
		logger.Debugf("%d bytes written to %s", n, name)
	case optSuspend:
		return c.call("DisplaySuspend").Err
	case optResume:
		return c.call("DisplayResume").Err
	default:
		flag.Usage()
	}
	return nil
}

func main() {
	flag.StringVar(&optGet, "get", "", "read an attribute")
	flag.StringVar(&optSet, "set", "", "write an attribute, key=value")
	flag.BoolVar(&optList, "list", false, "list all attributes")
	flag.BoolVar(&optSuspend, "suspend", false, "notify display suspend")
	flag.BoolVar(&optResume, "resume", false, "notify display resume")
	flag.BoolVar(&optDebug, "debug", false, "debug mode")
	flag.Parse()
	if optDebug {
		logger.SetLogLevel(log.LevelDebug)
	}

	c, err := newClient()
	if err != nil {
		logger.Warning(err)
		os.Exit(2)
	}
	err = run(c)
	if err != nil {
		logger.Warning(err)
		os.Exit(1)
	}
}
