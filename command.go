package txlin

import (
	"sync"

	"github.com/gogpu/txlin/backend"
)

// commandKind discriminates queued draw commands.
type commandKind uint8

const (
	cmdLine commandKind = iota
	cmdTextOut
	cmdClear
	cmdSetColor
	cmdCursor
	cmdSound
)

func (k commandKind) String() string {
	switch k {
	case cmdLine:
		return "line"
	case cmdTextOut:
		return "textOut"
	case cmdClear:
		return "clear"
	case cmdSetColor:
		return "setColor"
	case cmdCursor:
		return "cursor"
	case cmdSound:
		return "sound"
	}
	return "unknown"
}

// drawCommand is one queued drawing request. It is immutable once enqueued
// and carries all its arguments by value. Note that a line command carries
// no color: color is drawing-context state, changed by its own command, so
// a worker's SetColor-then-Line pair applies in submission order exactly as
// it would have on the owning thread.
type drawCommand struct {
	kind commandKind

	x1, y1, x2, y2 int
	text           string
	color          Color
	cursor         backend.Cursor
}

// commandQueue is the per-window multi-producer/single-consumer queue of
// draw requests submitted by worker goroutines. Append order under one lock
// yields a total order consistent with each producer's own sequence, which
// is the only cross-producer guarantee made.
type commandQueue struct {
	mu   sync.Mutex
	cmds []drawCommand
}

func newCommandQueue() *commandQueue {
	return &commandQueue{}
}

// push appends one command.
func (q *commandQueue) push(cmd drawCommand) {
	q.mu.Lock()
	q.cmds = append(q.cmds, cmd)
	q.mu.Unlock()
}

// drain removes and returns all currently queued commands in FIFO order.
// Commands pushed during a drain are picked up by the next drain.
func (q *commandQueue) drain() []drawCommand {
	q.mu.Lock()
	cmds := q.cmds
	q.cmds = nil
	q.mu.Unlock()
	return cmds
}

// size returns the number of queued commands.
func (q *commandQueue) size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.cmds)
}
