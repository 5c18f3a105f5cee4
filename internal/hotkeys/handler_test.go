package hotkeys

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/stretchr/testify/assert"
)

func TestIgnoreMasks(t *testing.T) {
	caps := uint16(xproto.ModMaskLock)
	num := uint16(xproto.ModMask2)

	assert.Equal(t, []uint16{0, caps}, ignoreMasks())
	assert.Equal(t, []uint16{0, caps}, ignoreMasks(0, caps))
	assert.ElementsMatch(t, []uint16{0, caps, num, caps | num}, ignoreMasks(num, 0, num))
}
