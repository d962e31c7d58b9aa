package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/aircon-watchdog/internal/status"
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
<title>Aircon Watchdog</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.on { color: green; font-weight: bold; }
.off { color: #888; }
.halted { color: red; font-weight: bold; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>Aircon Watchdog</h1>

<h2>Appliance</h2>
<table>
<tr><th>State</th><td class="{{if eq .State.String "OFF"}}off{{else}}on{{end}}">{{.State}}</td></tr>
<tr><th>IR in flight</th><td>{{if .Pending}}yes{{else}}no{{end}}</td></tr>
{{if .Halted}}<tr><th>Fault</th><td class="halted">{{.FaultLabel}} (awaiting reset)</td></tr>{{end}}
</table>

<h2>Watchdog</h2>
<table>
<tr><th>Armed</th><td>{{if .Armed}}yes{{else}}no{{end}}</td></tr>
<tr><th>Window</th><td>{{.Config.WindowMs}}ms</td></tr>
<tr><th>Last reset</th><td>{{if .WatchdogReset}}WATCHDOG{{else}}clean{{end}}</td></tr>
<tr><th>Reset count</th><td>{{.Fault.ResetCount}}</td></tr>
<tr><th>Fault code</th><td>{{.Fault.Code}}</td></tr>
<tr><th>Feeds this boot</th><td>{{.Counters.Feeds}}</td></tr>
</table>

<h2>Commands</h2>
<table>
<tr><th>Applied</th><td>{{.Counters.Applied}}</td></tr>
<tr><th>Rejected</th><td>{{.Counters.Rejected}}</td></tr>
<tr><th>Faults</th><td>{{.Counters.Faults}}</td></tr>
</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{.Config.Broker}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Settle</th><td>{{.Config.SettleMs}}ms</td></tr>
<tr><th>LIRC remote</th><td>{{.Config.LircRemote}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a> | <a href="/metrics">Metrics</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) {
	// Snapshot has Uptime() method but the template needs a Duration field.
	data := struct {
		status.Snapshot
		Uptime time.Duration
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
	}
	indexTmpl.Execute(w, data)
}
