// Package store holds the authoritative in-memory commute collection
// and settings.
//
// The [Store] is the sole owner of application state. All mutation goes
// through its operations; reads return snapshot copies, never live
// references. Every mutation notifies subscribed observers with the
// post-mutation snapshot before the operation returns, which is how the
// persistence layer and any UI stay current.
//
// Derived statistics are not stored: [Store.Stats] recomputes them from
// the current collection on every call.
package store
