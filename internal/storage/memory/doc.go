// Package memory provides the in-memory cell store for CheckGrid.
//
// CellStore owns the fixed-size array of checkbox cells shared by every
// request in the process. All access goes through one sync.RWMutex:
//
//   - Toggle takes the write lock and flips a single cell
//   - Get and Stats take the read lock
//   - Snapshot takes the read lock and copies the whole array
//
// Holding a single lock for the array, the toggle version and the
// checked-cell count makes every operation linearizable and every
// snapshot a stop-the-world view. Callers never see the lock.
package memory
