// Package sync contains the reconciliation engine merging the local store
// with the per-user remote mirror.
package sync

// Action names what the engine did with a single record.
type Action string

const (
	// ActionPulled means the remote version was written into the local store.
	ActionPulled Action = "pulled"
	// ActionPushed means the local version was sent to the remote store.
	ActionPushed Action = "pushed"
	// ActionTombstoned means a local soft-delete was propagated: local hard
	// delete plus a remote delete call.
	ActionTombstoned Action = "tombstoned"
	// ActionPurged means a local soft-deleted record was hard-deleted with no
	// remote call (the remote never held it).
	ActionPurged Action = "purged"
	// ActionUnchanged means equal clocks; no write and no network call.
	ActionUnchanged Action = "unchanged"
	// ActionFailed means the record's remote or local operation failed; the
	// batch continues.
	ActionFailed Action = "failed"
)

// Event is published per record so callers can await completion deterministically.
type Event struct {
	Action        Action
	TransactionID int64
	Err           error
}

// RecordFailure captures one isolated per-record failure.
type RecordFailure struct {
	TransactionID int64
	Action        Action
	Err           error
}

// Report summarizes a completed sync pass. A pass that fetched its snapshots
// always completes; per-record failures are tallied, never fatal.
type Report struct {
	Pulled     int
	Pushed     int
	Tombstoned int
	Purged     int
	Unchanged  int
	Failed     int
	Failures   []RecordFailure
}

// NetworkCalls returns the number of successful remote record operations the
// pass issued (snapshot fetches excluded). Zero on a quiescent re-run.
func (r *Report) NetworkCalls() int {
	return r.Pushed + r.Tombstoned
}

func (r *Report) recordFailure(id int64, action Action, err error) {
	r.Failed++
	r.Failures = append(r.Failures, RecordFailure{TransactionID: id, Action: action, Err: err})
}
