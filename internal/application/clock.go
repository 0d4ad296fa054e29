package application

import "time"

// Clock port supaya timestamp history gampang ditest
type Clock interface {
	Now() time.Time
}

// SystemClock jam produksi, pakai time.Now()
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
