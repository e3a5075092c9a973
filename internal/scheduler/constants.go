package scheduler

const (
	LogMsgJobScheduled     = "Job scheduled"
	LogMsgTickSkipped      = "Worker pool full, scheduled run skipped"
	LogMsgScheduleDisabled = "Non-positive interval, job not scheduled"
)
