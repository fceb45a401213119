// Package dist implements the probability primitives behind cash flow
// projection.
//
// Key types:
//   - Dist: a discrete distribution of ordered outcomes whose total
//     probability is at most 1
//   - Float: a min/mean/max distribution over the reals, used for uncertain
//     amounts and balances
package dist
