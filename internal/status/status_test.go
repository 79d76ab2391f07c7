package status

import (
	"strings"
	"testing"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Cfx.re Status</title><script>window.x=1;</script></head>
<body>
<div class="page-status"><span>All Systems Operational</span></div>
<div class="component"><span class="name">FiveM</span><span class="status">Operational</span></div>
<div class="component"><span class="name">RedM</span><span class="status">Operational</span></div>
<div class="component"><span class="name">FXServer</span><span class="status">Degraded Performance</span></div>
<div class="component"><span class="name">Game Services</span><span class="status">Partial Outage</span></div>
<div class="component"><span class="name">CnL</span><span class="status">Major Outage</span></div>
<div class="component"><span class="name">Policy</span><span class="status">Under Maintenance</span></div>
<div class="component"><span class="name">Keymaster</span><span class="status">Operational</span></div>
<div class="component"><span class="name">Web Services</span><span class="status">Operational</span></div>
<div class="component"><span class="name">Forums</span><span class="status">Operational</span></div>
<div class="component"><span class="name">Server List</span><span class="status">Operational</span></div>
<div class="component"><span class="name">Runtime</span><span class="status">Operational</span></div>
<div class="component"><span class="name">IDMS</span><span class="status">Operational</span></div>
<div class="component"><span class="name">Portal</span><span class="status">Operational</span></div>
</body>
</html>`

func TestParseFullPage(t *testing.T) {
	report, err := Parse(strings.NewReader(samplePage))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if report.Overall != StateOperational {
		t.Fatalf("overall = %v, want operational", report.Overall)
	}
	if len(report.Services) != len(Services) {
		t.Fatalf("got %d services, want %d", len(report.Services), len(Services))
	}

	want := map[string]State{
		"FiveM":         StateOperational,
		"FXServer":      StateDegraded,
		"Game Services": StatePartialOutage,
		"CnL":           StateMajorOutage,
		"Policy":        StateMaintenance,
	}
	for _, svc := range report.Services {
		expected, ok := want[svc.Name]
		if !ok {
			expected = StateOperational
		}
		if svc.State != expected {
			t.Fatalf("%s = %v, want %v", svc.Name, svc.State, expected)
		}
	}
}

func TestParseMissingServiceIsUnknown(t *testing.T) {
	page := `<html><body><span>Some Systems Experiencing Issues</span>
<div><span>FiveM</span><span>Operational</span></div></body></html>`
	report, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if report.Overall != StateDegraded {
		t.Fatalf("overall = %v, want degraded", report.Overall)
	}
	for _, svc := range report.Services {
		switch svc.Name {
		case "FiveM":
			if svc.State != StateOperational {
				t.Fatalf("FiveM = %v, want operational", svc.State)
			}
		default:
			if svc.State != StateUnknown {
				t.Fatalf("%s = %v, want unknown", svc.Name, svc.State)
			}
		}
	}
}

func TestParseIgnoresScriptText(t *testing.T) {
	page := `<html><head><script>var s = "FiveM Major Outage";</script></head>
<body><div><span>FiveM</span><span>Operational</span></div></body></html>`
	report, err := Parse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if report.Services[0].State != StateOperational {
		t.Fatalf("FiveM = %v, want operational", report.Services[0].State)
	}
}

func TestStateStrings(t *testing.T) {
	if StateOperational.String() != "Operational" || StateUnknown.String() != "Unknown" {
		t.Fatalf("unexpected state labels")
	}
	if StateOperational.Emoji() == "" || StateUnknown.Emoji() == "" {
		t.Fatalf("every state needs an indicator")
	}
}
