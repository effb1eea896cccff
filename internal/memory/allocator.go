// Package memory implements a best-fit, coalescing allocator over a
// fixed-capacity contiguous region: a single ordered list of blocks
// scanned linearly on every call.
package memory

import "github.com/khryptorgraphics/procsim/internal/list"

// DefaultCapacity is the default total managed memory, in megabytes.
const DefaultCapacity = 2048

// MaxCapacity is the hard cap imposed by the 16-bit location/size fields.
const MaxCapacity = 65535

// Status is a block's allocation state.
type Status int

const (
	Free Status = iota
	Allocated
)

// Block is one contiguous region of the managed capacity.
type Block struct {
	Status   Status
	Location uint16
	Size     uint16
}

// Allocator owns the ordered block list for one fixed-capacity region.
// It is single-threaded; callers (the engine) never call it concurrently.
type Allocator struct {
	capacity uint16
	blocks   *list.List[*Block]
}

// New creates an allocator over capacity MB, starting as one free block
// at location 0. capacity must not exceed MaxCapacity.
func New(capacity uint16) *Allocator {
	a := &Allocator{capacity: capacity, blocks: list.New[*Block]()}
	a.blocks.Append(&Block{Status: Free, Location: 0, Size: capacity})
	return a
}

// Capacity returns the fixed total capacity in megabytes.
func (a *Allocator) Capacity() uint16 { return a.capacity }

// TotalSize returns the sum of every block's size, which must always
// equal Capacity.
func (a *Allocator) TotalSize() uint16 {
	var total uint16
	a.blocks.Each(func(n *list.Node[*Block]) { total += n.Value.Size })
	return total
}

// Blocks returns a snapshot of the block list in increasing-location order.
func (a *Allocator) Blocks() []*Block {
	return a.blocks.ToSlice()
}

// Allocate finds the smallest free block that fits size, breaking ties by
// lowest address, and carves it out (splitting if larger than needed).
// Returns (nil, false) if no block fits; this is the normal admission-wait
// signal, never an error.
func (a *Allocator) Allocate(size uint16) (*Block, bool) {
	var best *list.Node[*Block]
	a.blocks.Each(func(n *list.Node[*Block]) {
		b := n.Value
		if b.Status != Free || b.Size < size {
			return
		}
		if best == nil || b.Size < best.Value.Size {
			best = n
		}
	})
	if best == nil {
		return nil, false
	}

	b := best.Value
	if b.Size == size {
		b.Status = Allocated
		return b, true
	}

	allocated := &Block{Status: Allocated, Location: b.Location, Size: size}
	b.Location += size
	b.Size -= size
	a.blocks.InsertBefore(best, allocated)
	return allocated, true
}

// Free releases block back to the pool, eagerly coalescing with an
// adjacent free neighbour on either side. Freeing an already-free block
// is a no-op. Merge order is next-then-prev.
func (a *Allocator) Free(block *Block) {
	if block.Status == Free {
		return
	}

	var node *list.Node[*Block]
	a.blocks.Each(func(n *list.Node[*Block]) {
		if n.Value == block {
			node = n
		}
	})
	if node == nil {
		return
	}

	block.Status = Free

	if next := node.Next(); next != nil && next.Value.Status == Free {
		block.Size += next.Value.Size
		a.blocks.Remove(next)
	}
	if prev := node.Prev(); prev != nil && prev.Value.Status == Free {
		prev.Value.Size += block.Size
		a.blocks.Remove(node)
	}
}
