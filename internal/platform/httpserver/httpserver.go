package httpserver

import (
	"net/http"
	"time"
)

// Timeouts bound each phase of a connection. Zero fields take the defaults.
type Timeouts struct {
	ReadHeader time.Duration
	Read       time.Duration
	Write      time.Duration
	Idle       time.Duration
}

var defaultTimeouts = Timeouts{
	ReadHeader: 5 * time.Second,
	Read:       15 * time.Second,
	Write:      30 * time.Second,
	Idle:       60 * time.Second,
}

func New(addr string, handler http.Handler, t Timeouts) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: orDefault(t.ReadHeader, defaultTimeouts.ReadHeader),
		ReadTimeout:       orDefault(t.Read, defaultTimeouts.Read),
		WriteTimeout:      orDefault(t.Write, defaultTimeouts.Write),
		IdleTimeout:       orDefault(t.Idle, defaultTimeouts.Idle),
	}
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
