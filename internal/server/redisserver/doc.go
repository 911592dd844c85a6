// Package redisserver exposes the grid over the Redis serialization
// protocol (RESP2) so redis-cli and Redis client libraries can read and
// flip cells.
//
// Supported commands:
//   - PING [message], ECHO message, QUIT, COMMAND
//   - CG.GET id: 1 if the cell is checked, else 0
//   - CG.TOGGLE id: flips the cell and returns its new value
//   - CG.STATS: total, checked and version as a flat field/value array
//   - CG.SNAPSHOT: every cell as a bulk string of '0' and '1'
//
// Cell errors use the domain codes, e.g. "ERR CG-CELL-4040 cell id out of range".
package redisserver
