// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_parseAssignment(t *testing.T) {
	key, value, err := parseAssignment("mode=7")
	assert.NoError(t, err)
	assert.Equal(t, "mode", key)
	assert.Equal(t, "7", value)

	key, value, err = parseAssignment("enabled=")
	assert.NoError(t, err)
	assert.Equal(t, "enabled", key)
	assert.Equal(t, "", value)

	key, value, err = parseAssignment("debug=1=2")
	assert.NoError(t, err)
	assert.Equal(t, "debug", key)
	assert.Equal(t, "1=2", value)

	_, _, err = parseAssignment("=1")
	assert.Error(t, err)
	_, _, err = parseAssignment("mode")
	assert.Error(t, err)
}
