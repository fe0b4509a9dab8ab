package providers

import "time"

type Clock interface {
	Now() time.Time
	NowMillis() int64
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

func (SystemClock) NowMillis() int64 {
	return time.Now().UnixMilli()
}

func NewClock() Clock {
	return SystemClock{}
}
