// Package persist abstracts over the durable-storage backend.
//
// The [Adapter] interface is the full persistence contract: load
// whatever was last saved, save the full current state. Two
// implementations exist:
//
//   - [SQLiteAdapter]: an embedded relational store for hosts with a
//     real filesystem. Writes replace state inside one transaction.
//   - [KVAdapter]: a flat string-keyed store (bbolt) holding one JSON
//     document under a fixed key, for hosts that only offer key-value
//     persistence. The payload can be sealed at rest through a sealbox
//     keystore where the platform supports it.
//
// [Open] selects the backend once at process start; callers never
// branch on platform afterwards.
package persist
