// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are cron-based, using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StaleOrderJob - fails orders stuck in processing longer than the processing
// timeout, using the same conditional update as the processing pipeline
//
// # Usage
//
//	job := jobs.NewStaleOrderJob(failStaleHandler, "@every 1m", 10*time.Minute, logger)
//	jobManager := jobs.NewJobManager(job)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed batch is logged and retried on the next tick
// - An order that moves on between listing and failing is skipped
package jobs
