// Package config handles YAML plan loading with environment variable
// substitution.
//
// A plan file declares the accounts, scheduled cash flows, and analysis
// timeframe, plus optional database settings for persisting projections.
// Files support ${VAR} syntax for environment variable interpolation.
package config
