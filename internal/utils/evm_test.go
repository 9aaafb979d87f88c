package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsEVMAddress(t *testing.T) {
	assert.True(t, IsEVMAddress("0x52908400098527886E0F7030069857D2E4169EE7"))
	assert.True(t, IsEVMAddress("0xde709f2102306220921060314715629080e2fb77"))
	assert.True(t, IsEVMAddress("0xAbCdEf0123456789aBcDeF0123456789abCDef01"))

	assert.False(t, IsEVMAddress(""))
	assert.False(t, IsEVMAddress("52908400098527886E0F7030069857D2E4169EE7"))   // missing prefix
	assert.False(t, IsEVMAddress("0x52908400098527886E0F7030069857D2E4169EE"))  // 39 hex chars
	assert.False(t, IsEVMAddress("0x52908400098527886E0F7030069857D2E4169EE71")) // 41 hex chars
	assert.False(t, IsEVMAddress("0xZZ908400098527886E0F7030069857D2E4169EE7")) // non-hex
	assert.False(t, IsEVMAddress("bc1qxy2kgdygjrsqtzq2n0yrf2493p83kkfjhx0wlh")) // not EVM
}
