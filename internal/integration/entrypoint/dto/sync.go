package dto

import (
	"github.com/expense-tracker/core/internal/application/usecase/sync"
)

// SyncFailure describes one isolated per-record failure in a sync pass.
type SyncFailure struct {
	TransactionID int64  `json:"transactionId"`
	Action        string `json:"action"`
	Error         string `json:"error"`
}

// SyncReport summarizes a completed sync pass.
type SyncReport struct {
	Pulled     int           `json:"pulled"`
	Pushed     int           `json:"pushed"`
	Tombstoned int           `json:"tombstoned"`
	Purged     int           `json:"purged"`
	Unchanged  int           `json:"unchanged"`
	Failed     int           `json:"failed"`
	Failures   []SyncFailure `json:"failures,omitempty"`
}

// ToSyncReport converts a sync report to its API representation.
func ToSyncReport(report *sync.Report) *SyncReport {
	if report == nil {
		return nil
	}
	out := &SyncReport{
		Pulled:     report.Pulled,
		Pushed:     report.Pushed,
		Tombstoned: report.Tombstoned,
		Purged:     report.Purged,
		Unchanged:  report.Unchanged,
		Failed:     report.Failed,
	}
	for _, f := range report.Failures {
		failure := SyncFailure{TransactionID: f.TransactionID, Action: string(f.Action)}
		if f.Err != nil {
			failure.Error = f.Err.Error()
		}
		out.Failures = append(out.Failures, failure)
	}
	return out
}
