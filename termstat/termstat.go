// Package termstat provides a stats implementation which periodically
// prints its counters to the given writer. It is meant for watching
// cache hit rates and download progress at the terminal in lieu of an
// actual collector writing to an external tool. Everything beyond
// counting is a stub.
package termstat

import (
	"fmt"
	"io"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"
)

// Collector collects stats and prints them to the terminal.
type Collector struct {
	lock    sync.Mutex
	counts  map[string]int64
	changed bool
	out     io.Writer
}

// NewCollector initializes and returns a new Collector which starts
// printing immediately.
func NewCollector(out io.Writer) *Collector {
	c := &Collector{
		counts: make(map[string]int64),
		out:    out,
	}
	go func() {
		tick := time.NewTicker(time.Second * 2)
		for ; ; <-tick.C {
			c.Flush()
		}
	}()
	return c
}

// Count adds value to the named stat at the specified rate.
func (c *Collector) Count(name string, value int64, rate float64, tags ...string) {
	if rate < 1 && rand.Float64() > rate {
		return
	}
	c.lock.Lock()
	c.counts[name] += value
	c.changed = true
	c.lock.Unlock()
}

// Flush prints the current counters if anything changed since the last
// flush. Names are printed in sorted order so the line is stable.
func (c *Collector) Flush() {
	c.lock.Lock()
	defer c.lock.Unlock()
	if !c.changed {
		return
	}
	names := make([]string, 0, len(c.counts))
	for name := range c.counts {
		names = append(names, name)
	}
	sort.Strings(names)
	sb := strings.Builder{}
	for _, name := range names {
		fmt.Fprintf(&sb, "%s: %d ", name, c.counts[name])
	}
	c.changed = false
	fmt.Fprintf(c.out, "\r"+sb.String())
}

// Gauge does nothing.
func (c *Collector) Gauge(name string, value float64, rate float64, tags ...string) {}

// Histogram does nothing.
func (c *Collector) Histogram(name string, value float64, rate float64, tags ...string) {}

// Set does nothing.
func (c *Collector) Set(name string, value string, rate float64, tags ...string) {}

// Timing does nothing.
func (c *Collector) Timing(name string, value time.Duration, rate float64, tags ...string) {}
