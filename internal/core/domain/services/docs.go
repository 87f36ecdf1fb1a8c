// Package services provides domain services that span aggregates.
//
// The package includes:
//   - AccessPolicy: the pure authorization rule set deciding which actor may
//     perform which action on which resource
package services
