package resolve

import (
	"container/heap"
	"fmt"
)

// cycleError lists the nodes topoSort could not place: those on a cycle and
// those depending on one.
type cycleError struct {
	nodes []int
}

func (e *cycleError) Error() string {
	return fmt.Sprintf("cycle detected among %v", e.nodes)
}

// minQueue is a heap of node indices, smallest first.
type minQueue []int

func (q minQueue) Len() int           { return len(q) }
func (q minQueue) Less(i, j int) bool { return q[i] < q[j] }
func (q minQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *minQueue) Push(x any)        { *q = append(*q, x.(int)) }

func (q *minQueue) Pop() any {
	old := *q
	x := old[len(old)-1]
	*q = old[:len(old)-1]

	return x
}

// topoSort orders nodes 0..n-1 so that each comes after everything deps(i)
// names. Among nodes that are ready together the smallest index wins, so
// the order only depends on the graph.
func topoSort(n int, deps func(i int) []int) ([]int, error) {
	if n <= 0 {
		return nil, nil
	}

	pending := make([]int, n)
	users := make([][]int, n)

	for i := range n {
		for _, d := range deps(i) {
			if d < 0 || d >= n {
				return nil, fmt.Errorf("dependency index out of range: %d depends on %d", i, d)
			}

			pending[i]++
			users[d] = append(users[d], i)
		}
	}

	q := &minQueue{}

	for i, c := range pending {
		if c == 0 {
			heap.Push(q, i)
		}
	}

	order := make([]int, 0, n)

	for q.Len() > 0 {
		i := heap.Pop(q).(int)
		order = append(order, i)

		for _, u := range users[i] {
			if pending[u]--; pending[u] == 0 {
				heap.Push(q, u)
			}
		}
	}

	if len(order) == n {
		return order, nil
	}

	ce := &cycleError{}

	for i, c := range pending {
		if c > 0 {
			ce.nodes = append(ce.nodes, i)
		}
	}

	return nil, ce
}
