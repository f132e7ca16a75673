package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultAccountCacheTTL is how long an account read is cached.
	DefaultAccountCacheTTL = 5 * time.Minute

	accountCachePrefix = "account:"
	postingLockPrefix  = "posting:"
)
