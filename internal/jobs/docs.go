// Package jobs provides scheduled background tasks.
//
// The only job is OutboxRelayJob, which uses github.com/robfig/cron/v3 to
// publish pending status-change events from the outbox through the
// configured EventPublisher.
//
// # Usage
//
//	relay := jobs.NewOutboxRelayJob(relayHandler, "@every 5s", 100, logger)
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		return err
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - Relay failures are logged and retried on the next tick
//   - Messages that fail to publish stay pending until they run out of attempts
//   - Overlapping ticks are skipped while a run is in progress
package jobs
