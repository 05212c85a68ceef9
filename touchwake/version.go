// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

// Version is overridden at build time with -ldflags "-X ...touchwake.Version=".
var Version = "1.2.0"
