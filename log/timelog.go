package log

import "time"

// Chronit measures how long a phase step takes and reports it at debug level.
type Chronit struct {
	StartTime    time.Time
	EndTime      time.Time
	Log          Logger
	FunctionName string
}

// NewFuncTimer initializes a Chronit and records its start.
func NewFuncTimer(funcName string, logger Logger) Chronit {
	c := Chronit{Log: logger, FunctionName: funcName}
	c.RecordStart()
	return c
}

func (c *Chronit) RecordStart() {
	c.StartTime = time.Now()
	c.Log.Debugf("Timer: %s started at %s", c.FunctionName, c.StartTime.Format(time.RFC3339))
}

// RecordEnd is the call to defer right after NewFuncTimer.
func (c *Chronit) RecordEnd() {
	c.EndTime = time.Now()
	c.Log.Debugf("Timer: %s ran for %v and ended at %s", c.FunctionName, c.EndTime.Sub(c.StartTime), c.EndTime.Format(time.RFC3339))
}
