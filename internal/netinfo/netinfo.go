// Package netinfo enumerates and classifies the host's network interfaces
// for operator display. It is independent of the telemetry snapshot.
package netinfo

import (
	"net"
	"sort"
	"strings"

	psnet "github.com/shirou/gopsutil/v3/net"
)

// InterfaceType is a coarse classification of a network interface.
type InterfaceType int

const (
	TypeWiFi InterfaceType = iota
	TypeEthernet
	TypeVirtual
	TypeLoopback
	TypeOther
)

// String returns the display label for the type.
func (t InterfaceType) String() string {
	switch t {
	case TypeWiFi:
		return "WiFi"
	case TypeEthernet:
		return "Ethernet"
	case TypeVirtual:
		return "Virtual"
	case TypeLoopback:
		return "Loopback"
	default:
		return "Other"
	}
}

// Interface is one IPv4 interface with its classification.
type Interface struct {
	Name string
	IP   string
	Type InterfaceType
}

var wifiKeywords = []string{"wlan", "wlp", "wifi", "wi-fi", "wl", "ath", "wireless", "radio"}

var virtualKeywords = []string{
	"docker", "vmware", "virtual", "vbox", "tun", "tap", "br-", "veth",
	"virbr", "dummy", "ifb", "gre", "sit",
}

var ethernetKeywords = []string{"eth", "enp", "eno", "ens", "ethernet"}

// List returns the usable IPv4 interfaces, loopback and virtual ones removed,
// sorted WiFi first and deduplicated by IP.
func List() []Interface {
	stats, err := psnet.Interfaces()
	if err != nil {
		return nil
	}

	var interfaces []Interface
	for _, stat := range stats {
		for _, addr := range stat.Addrs {
			ip := parseIPv4(addr.Addr)
			if ip == nil {
				continue
			}

			ifType := Classify(stat.Name, ip)
			if ifType == TypeLoopback || ifType == TypeVirtual {
				continue
			}

			interfaces = append(interfaces, Interface{
				Name: stat.Name,
				IP:   ip.String(),
				Type: ifType,
			})
		}
	}

	// WiFi > 以太网 > 其他
	sort.SliceStable(interfaces, func(i, j int) bool {
		return typePriority(interfaces[i].Type) < typePriority(interfaces[j].Type)
	})

	seen := make(map[string]bool, len(interfaces))
	deduped := interfaces[:0]
	for _, iface := range interfaces {
		if seen[iface.IP] {
			continue
		}
		seen[iface.IP] = true
		deduped = append(deduped, iface)
	}

	return deduped
}

// LANInterfaces returns only interfaces holding a private LAN address.
func LANInterfaces() []Interface {
	var lan []Interface
	for _, iface := range List() {
		if IsLANIP(iface.IP) {
			lan = append(lan, iface)
		}
	}
	return lan
}

// Classify determines the interface type from its name and address.
func Classify(name string, ip net.IP) InterfaceType {
	lower := strings.ToLower(name)

	if ip.IsLoopback() || strings.Contains(lower, "lo") {
		return TypeLoopback
	}

	for _, kw := range wifiKeywords {
		if strings.Contains(lower, kw) {
			return TypeWiFi
		}
	}

	for _, kw := range virtualKeywords {
		if strings.Contains(lower, kw) {
			return TypeVirtual
		}
	}

	if v4 := ip.To4(); v4 != nil {
		// Docker 默认网段
		if v4[0] == 172 && (v4[1] == 17 || v4[1] == 18) {
			return TypeVirtual
		}
		// VirtualBox host-only 网段
		if v4[0] == 192 && v4[1] == 168 && v4[2] == 56 {
			return TypeVirtual
		}
	}

	for _, kw := range ethernetKeywords {
		if strings.Contains(lower, kw) {
			return TypeEthernet
		}
	}

	return TypeOther
}

// IsLANIP reports whether ip is in a private IPv4 range.
func IsLANIP(ip string) bool {
	v4 := net.ParseIP(ip)
	if v4 == nil {
		return false
	}
	v4 = v4.To4()
	if v4 == nil {
		return false
	}

	if v4[0] == 10 {
		return true
	}
	if v4[0] == 172 && v4[1] >= 16 && v4[1] <= 31 {
		return true
	}
	if v4[0] == 192 && v4[1] == 168 {
		return true
	}
	return false
}

func typePriority(t InterfaceType) int {
	switch t {
	case TypeWiFi:
		return 0
	case TypeEthernet:
		return 1
	case TypeOther:
		return 2
	default:
		return 3
	}
}

// parseIPv4 extracts an IPv4 address from "a.b.c.d" or "a.b.c.d/nn".
func parseIPv4(addr string) net.IP {
	host := addr
	if idx := strings.Index(addr, "/"); idx >= 0 {
		host = addr[:idx]
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return nil
	}
	return ip.To4()
}
