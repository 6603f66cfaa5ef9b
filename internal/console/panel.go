// Package console renders the startup information panels shown to the
// operator: access URLs, credentials and usage tips.
package console

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sysmon_pro/internal/netinfo"
)

var (
	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("6")).
			Padding(0, 2)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("6"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Width(14)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("2"))

	tipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("3"))
)

// Banner renders the application title box.
func Banner() string {
	title := titleStyle.Render("System Monitor Pro")
	return boxStyle.Render(title) + "\n"
}

// ServerPanel renders the listen port and every reachable access URL, WiFi
// interfaces first.
func ServerPanel(port int, interfaces []netinfo.Interface) string {
	var rows []string
	rows = append(rows, row("Status", highlightStyle.Render("running")))
	rows = append(rows, row("Port", fmt.Sprintf("%d", port)))
	rows = append(rows, row("Local", fmt.Sprintf("http://127.0.0.1:%d", port)))

	if len(interfaces) == 0 {
		rows = append(rows, row("Access", fmt.Sprintf("http://0.0.0.0:%d", port)))
	}
	for i, iface := range interfaces {
		label := ""
		if i == 0 {
			label = "Network"
		}
		url := fmt.Sprintf("%s (%s): http://%s:%d", iface.Name, iface.Type, iface.IP, port)
		if iface.Type == netinfo.TypeWiFi {
			url = highlightStyle.Render(url)
		}
		rows = append(rows, row(label, url))
	}

	return boxStyle.Render(strings.Join(rows, "\n")) + "\n"
}

// AuthPanel renders the configured dashboard credentials.
func AuthPanel(username, password string, tokenExpireHours int) string {
	rows := []string{
		row("Username", username),
		row("Password", password),
		row("Token TTL", fmt.Sprintf("%d hours", tokenExpireHours)),
	}
	panel := boxStyle.Render(strings.Join(rows, "\n"))
	tip := tipStyle.Render("Tip: change the default password after first login")
	return panel + "\n" + tip + "\n"
}

func row(label, value string) string {
	return labelStyle.Render(label) + value
}
