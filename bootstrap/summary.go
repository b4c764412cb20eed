package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/kbukum/mercurekit/component"
)

// Summary renders the startup report: infrastructure, routes and live health.
type Summary struct {
	serviceName     string
	version         string
	startupDuration time.Duration
}

// NewSummary creates a summary for the named service.
func NewSummary(serviceName, version string) *Summary {
	return &Summary{serviceName: serviceName, version: version}
}

// SetStartupDuration records the total startup time.
func (s *Summary) SetStartupDuration(d time.Duration) {
	s.startupDuration = d
}

// Display writes the summary to w. Infrastructure entries come from
// components implementing component.Describable, routes from those
// implementing component.RouteProvider.
func (s *Summary) Display(w io.Writer, registry *component.Registry) {
	fmt.Fprintf(w, "\n🚀 %s v%s started in %.2fs\n\n", s.serviceName, s.version, s.startupDuration.Seconds())

	if registry == nil {
		fmt.Fprintf(w, "   └── No components registered\n\n")
		return
	}

	var (
		infra  []component.Description
		routes []component.Route
	)
	for _, c := range registry.All() {
		if d, ok := c.(component.Describable); ok {
			desc := d.Describe()
			if desc.Name == "" {
				desc.Name = c.Name()
			}
			infra = append(infra, desc)
		}
		if rp, ok := c.(component.RouteProvider); ok {
			routes = append(routes, rp.Routes()...)
		}
	}

	if len(infra) > 0 {
		fmt.Fprintf(w, "📊 Infrastructure\n")
		for i, d := range infra {
			details := d.Details
			if d.Port > 0 {
				details = fmt.Sprintf("%s (:%d)", details, d.Port)
			}
			fmt.Fprintf(w, "   %s %s [%s]: %s\n", treePrefix(i, len(infra)), d.Name, d.Type, details)
		}
	}

	if len(routes) > 0 {
		fmt.Fprintf(w, "\n🌐 Routes (%d)\n", len(routes))
		for i, r := range routes {
			fmt.Fprintf(w, "   %s %-7s %s → %s\n", treePrefix(i, len(routes)), r.Method, r.Path, r.Handler)
		}
	}

	results := registry.HealthAll(context.Background())
	if len(results) > 0 {
		fmt.Fprintf(w, "\n🏥 Health Check\n")
		healthy := 0
		for i, h := range results {
			msg := ""
			if h.Message != "" {
				msg = " - " + h.Message
			}
			if h.Status == component.StatusHealthy {
				healthy++
			}
			fmt.Fprintf(w, "   %s %s %s: %s%s\n", treePrefix(i, len(results)),
				healthStatusIcon(h.Status), h.Name, strings.ToLower(string(h.Status)), msg)
		}
		if healthy == len(results) {
			fmt.Fprintf(w, "\n✅ All components healthy (%d/%d)\n", healthy, len(results))
		} else {
			fmt.Fprintf(w, "\n⚠️  Some components have issues (%d/%d healthy)\n", healthy, len(results))
		}
	}

	fmt.Fprintf(w, "\n")
}

func treePrefix(i, n int) string {
	if i == n-1 {
		return "└──"
	}
	return "├──"
}

func healthStatusIcon(status component.HealthStatus) string {
	switch status {
	case component.StatusHealthy:
		return "✅"
	case component.StatusDegraded:
		return "⚠️"
	case component.StatusUnhealthy:
		return "❌"
	default:
		return "❓"
	}
}
