// Package jobs provides scheduled background tasks for the checkout service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, six field expressions with
// seconds).
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending outbox messages (OrderPlaced events)
// to the message broker and marks them sent
//
// # Usage
//
//	relay, err := jobs.NewOutboxRelayJob(relayHandler, "*/5 * * * * *", 100, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// - A failed relay batch is logged and retried on the next tick; its messages
// stay pending
// - Failed job starts will stop any already running jobs
package jobs
