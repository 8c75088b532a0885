// Package fswatch implements filesystem watching with fsnotify.
//
// Roots are watched recursively, including directories created after
// the watch starts. Rapid write bursts for one file are debounced, and
// a path is only emitted once the file still exists when the burst
// settles, so consumers never classify a half-copied document.
package fswatch
