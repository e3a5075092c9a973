package main

import "context"

type SweepCommand struct{}

func (c *SweepCommand) Name() string {
	return "sweep"
}

func (c *SweepCommand) Description() string {
	return "Run one badge evaluation for every student"
}

func (c *SweepCommand) Run(args []string) error {
	ctx := context.Background()
	pool, svcs, err := devServices(ctx)
	if err != nil {
		return err
	}
	defer pool.Close()

	PrintHeader("Badge sweep")
	result, err := svcs.Badges.EvaluateAll(ctx)
	if err != nil {
		return err
	}
	PrintSuccess("Evaluated %d student(s): %d awarded, %d failed, %d aborted",
		result.Students, result.Awarded, result.Failed, result.Aborted)
	return nil
}
