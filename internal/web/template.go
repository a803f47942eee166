package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/RouterInfoMan/ecg-pm/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>ECG Sampler</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.good { color: green; font-weight: bold; }
.leadoff { color: red; font-weight: bold; }
.unknown { color: orange; }
.on { color: green; }
.off { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>ECG Sampler</h1>

<h2>Signal</h2>
<table>
<tr><th>Quality</th><td class="{{if eq .Signal "GOOD"}}good{{else if eq .Signal "LEAD_OFF"}}leadoff{{else}}unknown{{end}}">{{if eq .Signal "LEAD_OFF"}}LEAD-OFF{{else}}{{.Signal}}{{end}}</td></tr>
<tr><th>Last Value</th><td>{{if .Contact}}{{.LastValue}}{{else}}&mdash;{{end}}</td></tr>
<tr><th>Indicator</th><td class="{{if .IndicatorOn}}on{{else}}off{{end}}">{{if .IndicatorOn}}ON{{else}}OFF{{end}}</td></tr>
<tr><th>Sampling</th><td>{{if .HasSample}}yes{{else}}no{{end}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{if .Config.Broker}}{{.Config.Broker}}{{else}}disabled{{end}}</td></tr>
{{if .Network}}<tr><th>Network</th><td>{{.Network.Status}} ({{.Network.Type}}{{if .Network.SSID}} / {{.Network.SSID}}{{end}})</td></tr>
<tr><th>IP</th><td>{{.Network.IP}}</td></tr>{{end}}
</table>

<h2>Tick Counts</h2>
<table>
<tr><th>Total</th><td>{{.Counts.Ticks}}</td></tr>
<tr><th>No Contact</th><td>{{.Counts.NoContact}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Period</th><td>{{.Config.PeriodMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>Pins</th><td>LED={{.Config.PinLED}} LO+={{.Config.PinLOPlus}} LO-={{.Config.PinLOMinus}}</td></tr>
<tr><th>ADC Channel</th><td>{{.Config.ADCChannel}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
		Signal string
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Signal:   status.SignalString(snap),
	}
	indexTmpl.Execute(w, data)
}
