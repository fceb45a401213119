// Package flow models scheduled cash flows between endpoints and projects
// the resulting balances over time.
//
// Balances are uncertain: each is tracked as a minimum, mean, and maximum.
// The minimum assumes every outgoing event happens at the largest possible
// amount and no incoming event happens unless certain; the maximum assumes
// the reverse. The mean weights each event by its probability.
package flow
