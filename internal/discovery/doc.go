// Package discovery locates a reachable relay and tracks its health.
//
// Prober walks an ordered candidate list once per Discover call and caches
// the first base that answers its health path with 200. It never re-probes
// on its own; callers decide when to call Reprobe.
//
// Monitor polls the current base on a fixed interval and reports status and
// the latest full state. A failed tick leaves the previous state in place.
package discovery
