// Package metrics exposes Prometheus counters for the credential flows.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels shared by login and signup counters.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// Recorder is what the HTTP layer reports to. Nop satisfies it for callers
// that do not collect metrics.
type Recorder interface {
	RecordLogin(outcome string)
	RecordSignup(outcome string)
	RecordHTTPRequest(method, route string, status int)
}

type Collector struct {
	logins   *prometheus.CounterVec
	signups  *prometheus.CounterVec
	requests *prometheus.CounterVec
	gatherer prometheus.Gatherer
}

// NewCollector creates the collectors and registers them with reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "credkeeper_login_total",
			Help: "Login attempts by outcome.",
		}, []string{"outcome"}),
		signups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "credkeeper_signup_total",
			Help: "Signup attempts by outcome.",
		}, []string{"outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "credkeeper_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		gatherer: reg,
	}

	reg.MustRegister(c.logins, c.signups, c.requests)

	return c
}

func (c *Collector) RecordLogin(outcome string) {
	c.logins.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordSignup(outcome string) {
	c.signups.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordHTTPRequest(method, route string, status int) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

type Nop struct{}

func (Nop) RecordLogin(string)                    {}
func (Nop) RecordSignup(string)                   {}
func (Nop) RecordHTTPRequest(string, string, int) {}
