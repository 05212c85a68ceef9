// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake1

import (
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/godbus/dbus/v5"
	ConfigManager "github.com/linuxdeepin/go-dbus-factory/org.desktopspec.ConfigManager"
	"github.com/linuxdeepin/go-lib/dbusutil"
	"github.com/linuxdeepin/go-lib/utils"
	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"github.com/linuxdeepin/dde-touchwake/touchwake"
)

const (
	dsettingsAppID         = "org.deepin.dde.daemon"
	dsettingsTouchWakeName = "org.deepin.dde.daemon.touchwake"
	dsettingsEnabled       = "enabled"
	dsettingsMode          = "mode"
	dsettingsKeepWakeLock  = "keepWakeLock"
	dsettingsDeviceConfig  = "deviceConfig"
)

const (
	defaultDeviceConfigFile  = "/usr/share/dde-touchwake/devices.yaml"
	overrideDeviceConfigFile = "/etc/dde-touchwake/devices.yaml"
)

type Config struct {
	Enabled      bool
	Mode         uint32
	KeepWakeLock bool
	DeviceConfig string
}

func defaultConfig() *Config {
	return &Config{
		Mode:         touchwake.DefaultMode,
		DeviceConfig: defaultDeviceConfigFile,
	}
}

// DeviceConfig maps the feature onto the hardware of a product. Empty
// entries are detected by input capabilities.
type DeviceConfig struct {
	Touchscreen struct {
		// evdev device name
		Name string `yaml:"name"`
		// sysfs attribute, 1 stops scanning, 0 resumes it
		InhibitPath string `yaml:"inhibitPath"`
	} `yaml:"touchscreen"`

	Proximity struct {
		Name string `yaml:"name"`
		// sysfs attribute armed with 1 while the display is off
		EnablePath string `yaml:"enablePath"`
	} `yaml:"proximity"`
}

func loadDeviceConfig(filename string) (*DeviceConfig, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var cfg DeviceConfig
	err = yaml.Unmarshal(content, &cfg)
	if err != nil {
		return nil, xerrors.Errorf("parse %s: %w", filename, err)
	}
	return &cfg, nil
}

// deviceConfigFile prefers the administrator override in /etc.
func deviceConfigFile(configured string) string {
	if utils.IsFileExist(overrideDeviceConfigFile) {
		return overrideDeviceConfigFile
	}
	return configured
}

func loadDeviceConfigSafe(configured string) *DeviceConfig {
	filename := deviceConfigFile(configured)
	cfg, err := loadDeviceConfig(filename)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug("no device config, detect devices:", filename)
		} else {
			logger.Warning(err)
		}
		return &DeviceConfig{}
	}
	logger.Debug("device config:", spew.Sdump(cfg))
	return cfg
}

func toUint32(v interface{}) (uint32, bool) {
	switch vv := v.(type) {
	case float64:
		return uint32(vv), true
	case int64:
		return uint32(vv), true
	case int32:
		return uint32(vv), true
	case uint32:
		return vv, true
	}
	logger.Warning("type is wrong! type : ", v)
	return 0, false
}

func (m *Manager) dsgBool(key string, dst *bool) {
	data, err := m.dsgTouchWake.Value(0, key)
	if err != nil {
		logger.Warning(err)
		return
	}
	v, ok := data.Value().(bool)
	if !ok {
		logger.Warning("type is wrong! key : ", key)
		return
	}
	*dst = v
}

// initDsgConfig reads the provisioned defaults into m.cfg.
func (m *Manager) initDsgConfig(conn *dbus.Conn) error {
	logger.Info("touchwake module start init dconfig.")
	ds := ConfigManager.NewConfigManager(conn)

	dsPath, err := ds.AcquireManager(0, dsettingsAppID, dsettingsTouchWakeName, "")
	if err != nil {
		return err
	}
	dsTouchWake, err := ConfigManager.NewManager(conn, dsPath)
	if err != nil {
		return err
	}
	m.dsgTouchWake = dsTouchWake

	m.dsgBool(dsettingsEnabled, &m.cfg.Enabled)
	m.dsgBool(dsettingsKeepWakeLock, &m.cfg.KeepWakeLock)

	data, err := dsTouchWake.Value(0, dsettingsMode)
	if err != nil {
		logger.Warning(err)
	} else if mode, ok := toUint32(data.Value()); ok {
		m.cfg.Mode = mode
	}

	data, err = dsTouchWake.Value(0, dsettingsDeviceConfig)
	if err != nil {
		logger.Warning(err)
	} else if path, ok := data.Value().(string); ok && path != "" {
		m.cfg.DeviceConfig = path
	}
	return nil
}

func (m *Manager) connectDsgChanged(sigLoop *dbusutil.SignalLoop) {
	if m.dsgTouchWake == nil {
		return
	}
	m.dsgTouchWake.InitSignalExt(sigLoop, true)
	_, err := m.dsgTouchWake.ConnectValueChanged(func(key string) {
		logger.Info("dconfig org.deepin.dde.daemon.touchwake valueChanged, key : ", key)
		switch key {
		case dsettingsKeepWakeLock:
			keep := m.cfg.KeepWakeLock
			m.dsgBool(dsettingsKeepWakeLock, &keep)
			m.cfg.KeepWakeLock = keep
			m.tw.SetKeepWakeLock(keep)
		}
	})
	if err != nil {
		logger.Warning(err)
	}
}
