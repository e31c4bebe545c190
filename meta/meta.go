// meta/meta.go
package meta

import "time"

// NUM_GAMES defines the number of games played per matchup.
const NUM_GAMES = 20

// TIME_LIMIT defines the wall-clock time a player gets per move.
const TIME_LIMIT = 150 * time.Millisecond

// TIMEOUT defines the time left at which a search abandons its current depth.
const TIMEOUT = 10 * time.Millisecond

// BOARD_SIZE defines the height and width of the default board.
const BOARD_SIZE = 7

// OUTPUT_DIR defines where tournament records are written.
const OUTPUT_DIR = "results"

// PARALLEL defines the number of games played concurrently.
const PARALLEL = 1
