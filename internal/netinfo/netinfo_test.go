package netinfo

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		ip   string
		want InterfaceType
	}{
		{"wlan0", "192.168.1.10", TypeWiFi},
		{"wlp3s0", "192.168.1.11", TypeWiFi},
		{"eth0", "192.168.1.12", TypeEthernet},
		{"enp2s0", "10.0.0.5", TypeEthernet},
		{"docker0", "172.17.0.1", TypeVirtual},
		{"veth12ab", "172.20.0.2", TypeVirtual},
		{"br-0a1b2c", "172.19.0.1", TypeVirtual},
		{"lo", "127.0.0.1", TypeLoopback},
		{"usb0", "192.168.2.3", TypeOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.name, net.ParseIP(tt.ip))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassifyDockerSubnetWithoutKeyword(t *testing.T) {
	// Docker 默认网段即使接口名不含关键字也判定为虚拟网卡
	assert.Equal(t, TypeVirtual, Classify("custom0", net.ParseIP("172.17.0.5")))
	assert.Equal(t, TypeVirtual, Classify("custom0", net.ParseIP("172.18.0.5")))
	// VirtualBox host-only 网段
	assert.Equal(t, TypeVirtual, Classify("custom1", net.ParseIP("192.168.56.1")))
}

func TestIsLANIP(t *testing.T) {
	assert.True(t, IsLANIP("10.1.2.3"))
	assert.True(t, IsLANIP("172.16.0.1"))
	assert.True(t, IsLANIP("172.31.255.254"))
	assert.True(t, IsLANIP("192.168.0.1"))

	assert.False(t, IsLANIP("172.32.0.1"))
	assert.False(t, IsLANIP("8.8.8.8"))
	assert.False(t, IsLANIP("127.0.0.1"))
	assert.False(t, IsLANIP("not-an-ip"))
	assert.False(t, IsLANIP("::1"))
}

func TestInterfaceTypeString(t *testing.T) {
	assert.Equal(t, "WiFi", TypeWiFi.String())
	assert.Equal(t, "Ethernet", TypeEthernet.String())
	assert.Equal(t, "Virtual", TypeVirtual.String())
	assert.Equal(t, "Loopback", TypeLoopback.String())
	assert.Equal(t, "Other", TypeOther.String())
}
