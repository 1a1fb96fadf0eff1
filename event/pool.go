// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package event

// Pool is a fixed block size arena of pooled events.
// Its free list is only touched inside the kernel critical section.
type Pool struct {
	id        uint8
	blockSize int
	blocks    int
	free      []*Event
	minFree   int
}

// PoolStat is a snapshot of a pool occupancy
type PoolStat struct {
	// ID is the 1-based pool identifier
	ID uint8
	// BlockSize is the payload capacity of every block
	BlockSize int
	// Blocks is the total number of blocks
	Blocks int
	// Free is the number of blocks currently available
	Free int
	// MinFree is the lowest number of free blocks ever observed
	MinFree int
}

func newPool(id uint8, blockSize, blocks int) *Pool {
	storage := make([]byte, blockSize*blocks)
	events := make([]Event, blocks)
	free := make([]*Event, blocks)
	for i := range events {
		events[i].poolID = id
		events[i].block = storage[i*blockSize : (i+1)*blockSize : (i+1)*blockSize]
		free[i] = &events[i]
	}

	return &Pool{
		id:        id,
		blockSize: blockSize,
		blocks:    blocks,
		free:      free,
		minFree:   blocks,
	}
}

// get pops a block when more than margin blocks are free
func (p *Pool) get(margin int) *Event {
	n := len(p.free)
	if n <= margin {
		return nil
	}

	e := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	if n-1 < p.minFree {
		p.minFree = n - 1
	}
	return e
}

func (p *Pool) put(e *Event) {
	e.reset()
	p.free = append(p.free, e)
}

func (p *Pool) stat() PoolStat {
	return PoolStat{
		ID:        p.id,
		BlockSize: p.blockSize,
		Blocks:    p.blocks,
		Free:      len(p.free),
		MinFree:   p.minFree,
	}
}
