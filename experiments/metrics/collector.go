package metrics

import (
	"isolation/game"
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Algorithm string
	Evaluator string
	Duration  time.Duration
	Nodes     int
	Depth     int  // Deepest fully completed depth
	TimedOut  bool // Search was aborted by the time budget
	Opening   bool // Move came from the opening book
}

type MoveMetric struct {
	Step      int
	Player    game.Player
	Move      game.Move
	StateHash uint64 // Hash of the position the move was played from
	SearchMetric
}

type GameMetric struct {
	StartingPlayer game.Player
	Winner         game.Player
	Forfeit        string // Reason the loser forfeited, "" if they ran out of moves
	StartTime      time.Time
	EndTime        time.Time
	Duration       time.Duration
	TotalMoves     int
}

type Collector interface {
	Start(algorithm, evaluator string)
	AddNode()
	CompleteDepth(depth int)
	SetTimedOut()
	SetOpening()
	Complete() SearchMetric
}

type collector struct {
	algorithm string
	evaluator string
	startTime time.Time
	nodes     atomic.Int64
	depth     atomic.Int32
	timedOut  atomic.Bool
	opening   atomic.Bool
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(algorithm, evaluator string) {
	m.startTime = time.Now()
	m.algorithm = algorithm
	m.evaluator = evaluator
	m.nodes.Store(0)
	m.depth.Store(0)
	m.timedOut.Store(false)
	m.opening.Store(false)
}

func (m *collector) AddNode() {
	m.nodes.Add(1)
}

func (m *collector) CompleteDepth(depth int) {
	m.depth.Store(int32(depth))
}

func (m *collector) SetTimedOut() {
	m.timedOut.Store(true)
}

func (m *collector) SetOpening() {
	m.opening.Store(true)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Algorithm: m.algorithm,
		Evaluator: m.evaluator,
		Duration:  time.Since(m.startTime),
		Nodes:     int(m.nodes.Load()),
		Depth:     int(m.depth.Load()),
		TimedOut:  m.timedOut.Load(),
		Opening:   m.opening.Load(),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(algorithm, evaluator string) {}
func (m *dummyCollector) AddNode()                          {}
func (m *dummyCollector) CompleteDepth(depth int)           {}
func (m *dummyCollector) SetTimedOut()                      {}
func (m *dummyCollector) SetOpening()                       {}
func (m *dummyCollector) Complete() SearchMetric            { return SearchMetric{} }
