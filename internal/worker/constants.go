package worker

import "time"

// DefaultJobTimeout bounds a single job unless the pool is configured otherwise
const DefaultJobTimeout = 2 * time.Minute

// Log messages
const (
	LogMsgWorkerJobFailed   = "Worker job failed"
	LogMsgWorkerJobPanicked = "Worker job panicked"
	LogMsgWorkerJobDropped  = "Worker pool stopping, job dropped"
)

// Test pool configuration values used in pool_test.go
const (
	TestWorkerCount           = 2
	TestQueueSize             = 10
	TestExpectedJobCount      = 2
	TestWorkerProcessWaitTime = 100 // milliseconds
)
