// Package cache provides the generic pending-result cache used by every feature panel.
//
// A backend pushes a result into the cache, keyed by the correlation identifier the
// caller used for its remote call, through an out-of-band store method. The caller
// reads the entry once its call has resolved and removes it after consumption.
//
// Entries are never evicted: there is no size bound and no TTL.
package cache
