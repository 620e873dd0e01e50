package metrics

import "time"

// StartLedgerOperationTimer returns a func that records the operation
// duration with the outcome of the error it is given.
func StartLedgerOperationTimer(operation string) func(err error) {
	startTime := time.Now()
	return func(err error) {
		RecordLedgerOperation(time.Since(startTime), operation, err != nil)
	}
}
