// Package histcache caches portal serial-history responses in a local SQLite
// database so repeated exports of the same serial set skip the portal.
//
// Entries are keyed by serial number plus the requested date window and
// expire after a configurable TTL. The cache stores the raw history rows, not
// extraction results; milestone derivation always reruns.
package histcache
