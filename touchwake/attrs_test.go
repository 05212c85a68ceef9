// SPDX-FileCopyrightText: 2022 UnionTech Software Technology Co., Ltd.
//
// SPDX-License-Identifier: GPL-3.0-or-later

package touchwake

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_ReadAttribute(t *testing.T) {
	env := newTestEnv(t, false)
	tw := env.tw

	tests := []struct {
		name string
		want string
	}{
		{AttrEnabled, "0\n"},
		{AttrMode, "7\n"},
		{AttrVersion, Version + "\n"},
		{AttrDebug, "0\n"},
		{AttrTouchOffDelay, "30000\n"},
		{AttrState, "timed_out : 1\nprox_near : 0\n"},
	}
	for _, tt := range tests {
		got, err := tw.ReadAttribute(tt.name)
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, got, tt.name)
	}

	_, err := tw.ReadAttribute("delay")
	assert.True(t, errors.Is(err, ErrUnknownAttribute))
}

func Test_WriteAttribute(t *testing.T) {
	env := newTestEnv(t, false)
	tw := env.tw

	tests := []struct {
		name  string
		input string
		check func() bool
	}{
		{AttrEnabled, "1\n", func() bool { return tw.Settings().Enabled() }},
		{AttrEnabled, "2\n", func() bool { return tw.Settings().Enabled() }},
		{AttrEnabled, "yes\n", func() bool { return tw.Settings().Enabled() }},
		{AttrMode, "9\n", func() bool { return tw.Settings().Mode().Bits() == 9 }},
		{AttrMode, "16\n", func() bool { return tw.Settings().Mode().Bits() == 9 }},
		{AttrMode, "-1\n", func() bool { return tw.Settings().Mode().Bits() == 9 }},
		{AttrMode, "", func() bool { return tw.Settings().Mode().Bits() == 9 }},
		{AttrDebug, "1", func() bool { return tw.Settings().Debug() }},
		{AttrDebug, "0", func() bool { return !tw.Settings().Debug() }},
		{AttrEnabled, " 0 \n", func() bool { return !tw.Settings().Enabled() }},
	}
	for _, tt := range tests {
		n := tw.WriteAttribute(tt.name, []byte(tt.input))
		assert.Equal(t, len(tt.input), n, "%s=%q", tt.name, tt.input)
		assert.True(t, tt.check(), "%s=%q", tt.name, tt.input)
	}
}

func Test_WriteReadOnlyAttribute(t *testing.T) {
	env := newTestEnv(t, false)
	tw := env.tw

	assert.Equal(t, 4, tw.WriteAttribute(AttrVersion, []byte("9.9\n")))
	v, _ := tw.ReadAttribute(AttrVersion)
	assert.Equal(t, Version+"\n", v)

	assert.Equal(t, 2, tw.WriteAttribute(AttrTouchOffDelay, []byte("5\n")))
	assert.Equal(t, uint32(30000), tw.GetTouchOffDelay())

	assert.Equal(t, 3, tw.WriteAttribute("nope", []byte("1\n\n")))

	assert.True(t, errors.Is(tw.writeAttribute(AttrState, []byte("1")), ErrReadOnlyAttribute))
	assert.True(t, errors.Is(tw.writeAttribute("nope", []byte("1")), ErrUnknownAttribute))
}

func Test_AttributeNames(t *testing.T) {
	names := AttributeNames()
	assert.Contains(t, names, AttrEnabled)
	assert.Contains(t, names, AttrVersion)
	assert.True(t, IsWritableAttribute(AttrMode))
	assert.False(t, IsWritableAttribute(AttrVersion))

	// callers must not be able to modify the table
	names[0] = "x"
	assert.Equal(t, AttrEnabled, AttributeNames()[0])
}
