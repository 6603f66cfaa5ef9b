package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sysmon_pro/model"
)

type fakeProbe struct {
	vendor string
	result *model.GPUInfo
	called bool
}

func (f *fakeProbe) Vendor() string { return f.vendor }

func (f *fakeProbe) Detect() *model.GPUInfo {
	f.called = true
	return f.result
}

func TestDetectReturnsFirstSuccess(t *testing.T) {
	nvidia := &fakeProbe{vendor: model.VendorNVIDIA, result: &model.GPUInfo{Vendor: model.VendorNVIDIA}}
	amd := &fakeProbe{vendor: model.VendorAMD, result: &model.GPUInfo{Vendor: model.VendorAMD}}
	intel := &fakeProbe{vendor: model.VendorIntel, result: &model.GPUInfo{Vendor: model.VendorIntel}}

	info := Detect([]Probe{nvidia, amd, intel})

	require.NotNil(t, info)
	assert.Equal(t, model.VendorNVIDIA, info.Vendor)
	assert.False(t, amd.called, "chain must short-circuit after the first hit")
	assert.False(t, intel.called)
}

func TestDetectFallsThroughInOrder(t *testing.T) {
	nvidia := &fakeProbe{vendor: model.VendorNVIDIA}
	amd := &fakeProbe{vendor: model.VendorAMD, result: &model.GPUInfo{Vendor: model.VendorAMD}}
	intel := &fakeProbe{vendor: model.VendorIntel, result: &model.GPUInfo{Vendor: model.VendorIntel}}

	info := Detect([]Probe{nvidia, amd, intel})

	require.NotNil(t, info)
	assert.Equal(t, model.VendorAMD, info.Vendor, "AMD must win over Intel when NVIDIA fails")
	assert.True(t, nvidia.called)
	assert.False(t, intel.called)
}

func TestDetectAllProbesFail(t *testing.T) {
	probes := []Probe{
		&fakeProbe{vendor: model.VendorNVIDIA},
		&fakeProbe{vendor: model.VendorAMD},
		&fakeProbe{vendor: model.VendorIntel},
	}

	assert.Nil(t, Detect(probes))
}
