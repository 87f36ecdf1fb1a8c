// Package offer models a driver's published transport capacity. Offers are
// owned by exactly one driver; transport requests attach to them.
package offer
