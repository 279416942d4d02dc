package sample

import (
	"runtime"
	"time"
)

// Default generation and submission settings.
const (
	DefaultTopics  = 12
	DefaultCount   = 1
	DefaultTimeout = 10 * time.Second
)

// Config holds settings for a sample run.
type Config struct {
	BaseURL string        // service base URL; empty means print only
	Count   int           // number of analyses to generate
	Topics  int           // topics per analysis
	Workers int           // concurrent submitters
	Timeout time.Duration // per request timeout
	Seed    uint64        // 0 means time based
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.Count < 1 {
		c.Count = DefaultCount
	}
	if c.Topics < 1 {
		c.Topics = DefaultTopics
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
}

// Report summarizes a submission run.
type Report struct {
	Submitted int `json:"submitted"`
	Accepted  int `json:"accepted"`
	Duplicate int `json:"duplicate"`
	Failed    int `json:"failed"`
}

// ackResponse mirrors the service acknowledgement body.
type ackResponse struct {
	Status    string `json:"status"`
	Key       string `json:"key"`
	Duplicate bool   `json:"duplicate"`
}
