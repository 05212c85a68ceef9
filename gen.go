// SPDX-FileCopyrightText: 2018 - 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package daemon

//go:generate go build -o target/ github.com/linuxdeepin/dde-touchwake/bin/dde-touchwake-daemon
//go:generate go build -o target/ github.com/linuxdeepin/dde-touchwake/bin/touchwake-ctl
