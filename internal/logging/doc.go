// Package logging assembles the structured slog loggers used across tracktoo.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes attr helpers plus a no-op logger for tests and wiring code that
// cannot fail. Prefer these constructors over hand-rolled slog setup so every
// component emits the same line shape.
package logging
