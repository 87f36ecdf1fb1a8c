// Package request models a sender's transport request against a driver's offer
// and the lifecycle that moves it from pending to a terminal state.
//
// The lifecycle is a fixed table of (from, to, party) edges. Each applied
// transition yields a StatusChanged event for the outbox.
package request
