package utils

import (
	"sync/atomic"
	"time"
)

var sleepFunc atomic.Pointer[func(time.Duration)]

func init() {
	ResetSleepFunc()
}

// Sleep pauses through the current sleep function. Retry loops call it so
// tests can skip their backoff.
func Sleep(d time.Duration) {
	(*sleepFunc.Load())(d)
}

func SetSleepFunc(f func(time.Duration)) {
	sleepFunc.Store(&f)
}

func ResetSleepFunc() {
	SetSleepFunc(time.Sleep)
}
