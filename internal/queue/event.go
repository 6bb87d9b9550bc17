// Package queue defines message payloads exchanged over the message broker.
package queue

// Moderation actions recorded on the audit queue.
const (
    ActionBlock   = "block"
    ActionUnblock = "unblock"
    ActionDelete  = "delete"
)

// ModerationEvent is published after a bulk moderation call commits.  It
// contains enough information for downstream consumers to keep an audit
// trail without querying the primary database.
type ModerationEvent struct {
    Action     string   `json:"action"`
    Actor      string   `json:"actor"`
    Targets    []string `json:"targets"`
    Affected   int64    `json:"affected"`
    OccurredAt string   `json:"occurred_at"`
}
