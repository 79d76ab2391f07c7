// Package status polls the Cfx.re status page and extracts the health of
// the individual platform services.
package status

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// State is the operational state of a single service or of the platform
// as a whole.
type State int

const (
	StateUnknown State = iota
	StateOperational
	StateDegraded
	StatePartialOutage
	StateMajorOutage
	StateMaintenance
)

func (s State) String() string {
	switch s {
	case StateOperational:
		return "Operational"
	case StateDegraded:
		return "Degraded Performance"
	case StatePartialOutage:
		return "Partial Outage"
	case StateMajorOutage:
		return "Major Outage"
	case StateMaintenance:
		return "Under Maintenance"
	default:
		return "Unknown"
	}
}

// Emoji returns the indicator used when rendering the state in an embed.
func (s State) Emoji() string {
	switch s {
	case StateOperational:
		return "🟢"
	case StateDegraded:
		return "🟡"
	case StatePartialOutage:
		return "🟠"
	case StateMajorOutage:
		return "🔴"
	case StateMaintenance:
		return "🔧"
	default:
		return "⚪"
	}
}

// Services are the status page components we report on, in display order.
var Services = []string{
	"FiveM",
	"RedM",
	"FXServer",
	"Game Services",
	"CnL",
	"Policy",
	"Keymaster",
	"Web Services",
	"Forums",
	"Server List",
	"Runtime",
	"IDMS",
	"Portal",
}

// ServiceStatus pairs a service label with its current state.
type ServiceStatus struct {
	Name  string
	State State
}

// Report is one snapshot of the status page.
type Report struct {
	Overall  State
	Services []ServiceStatus
	Fetched  time.Time
}

// Client fetches and parses the status page.
type Client struct {
	url  string
	http *http.Client
}

func NewClient(url string) *Client {
	return &Client{
		url:  url,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// Fetch downloads the status page and parses it into a Report.
func (c *Client) Fetch(ctx context.Context) (Report, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return Report{}, fmt.Errorf("build status request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("fetch status page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("status page returned %d", resp.StatusCode)
	}
	report, err := Parse(resp.Body)
	if err != nil {
		return Report{}, err
	}
	report.Fetched = time.Now().UTC()
	return report, nil
}

// Parse extracts service states from the status page HTML. Services the
// page does not mention come back as StateUnknown.
func Parse(r io.Reader) (Report, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return Report{}, fmt.Errorf("parse status page: %w", err)
	}

	var b strings.Builder
	collectText(doc, &b)
	text := b.String()

	report := Report{Overall: overallState(text)}
	for _, name := range Services {
		report.Services = append(report.Services, ServiceStatus{
			Name:  name,
			State: serviceState(text, name),
		})
	}
	return report, nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		trimmed := strings.TrimSpace(n.Data)
		if trimmed != "" {
			b.WriteString(trimmed)
			b.WriteByte('\n')
		}
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

func overallState(text string) State {
	switch {
	case strings.Contains(text, "All Systems Operational"):
		return StateOperational
	case strings.Contains(text, "Major Service Outage"):
		return StateMajorOutage
	case strings.Contains(text, "Partial System Outage"):
		return StatePartialOutage
	case strings.Contains(text, "Some Systems Experiencing Issues"):
		return StateDegraded
	case strings.Contains(text, "Service Under Maintenance"):
		return StateMaintenance
	default:
		return StateUnknown
	}
}

// serviceState finds the service label in the extracted text and reads the
// state keyword that follows it. Labels appear on their own line, with the
// state on one of the next lines.
func serviceState(text, name string) State {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != name {
			continue
		}
		for _, next := range lines[i+1 : min(i+4, len(lines))] {
			if s, ok := stateKeyword(next); ok {
				return s
			}
		}
	}
	return StateUnknown
}

func stateKeyword(line string) (State, bool) {
	switch line {
	case "Operational":
		return StateOperational, true
	case "Degraded Performance":
		return StateDegraded, true
	case "Partial Outage":
		return StatePartialOutage, true
	case "Major Outage":
		return StateMajorOutage, true
	case "Under Maintenance", "Maintenance":
		return StateMaintenance, true
	}
	return StateUnknown, false
}
