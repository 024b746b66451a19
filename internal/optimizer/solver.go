package optimizer

import "sort"

// Exact solve of the squad selection integer program by depth-first
// branch and bound. The search runs over players reordered by objective
// value descending: the take-first branch finds strong incumbents early,
// and the per-position suffix bound is admissible only in that order, so
// solve sorts an index permutation internally and maps results back. The
// search enumerates take/skip decisions per player, which keeps it
// exact; ties between equal-objective selections resolve to the first
// one found in this deterministic order.

const solveEps = 1e-9

// problem is the integer program after pre-filtering. Costs are integer
// tenths of a currency unit so budget arithmetic is exact.
type problem struct {
	values      []float64
	costs       []int
	pos         []int // index into need
	team        []int // dense team index
	need        []int // required picks per position
	groups      [][]int // must-include candidate sets (player indices)
	budget      int   // tenths
	maxFromTeam int
	teamCount   int
}

type solver struct {
	p *problem

	// byPos[q] lists players of position q in search order; posPrefix[q]
	// holds prefix sums of their values; startRank[q][i] counts byPos[q]
	// entries with index < i, so the suffix view at node i is O(1).
	byPos     [][]int
	posPrefix [][]float64
	startRank [][]int
	// minCost[q][r] is the sum of the r cheapest position-q costs over
	// the whole pool, a lower bound on completing the quota.
	minCost [][]int

	groupOf   [][]int
	groupLast []int
	groupHits []int

	have     []int
	teamUsed []int
	chosen   []int
	costUsed int
	value    float64

	best    float64
	hasBest bool
	bestSet []int

	total int // required squad size
}

// solve returns the indices of the optimal selection, or nil when the
// problem is infeasible.
func solve(p *problem) []int {
	ordered, order := reorderByValue(p)
	selected := solveOrdered(ordered)
	if selected == nil {
		return nil
	}
	out := make([]int, len(selected))
	for i, idx := range selected {
		out[i] = order[idx]
	}
	return out
}

// reorderByValue permutes the problem so values descend, which the
// suffix bound in dfs requires. order maps permuted indices back to the
// caller's. The sort is stable, so an already-sorted problem keeps its
// index order and tie resolution is unchanged.
func reorderByValue(p *problem) (*problem, []int) {
	n := len(p.values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return p.values[order[a]] > p.values[order[b]]
	})

	rank := make([]int, n)
	for newIdx, origIdx := range order {
		rank[origIdx] = newIdx
	}

	q := &problem{
		values:      make([]float64, n),
		costs:       make([]int, n),
		pos:         make([]int, n),
		team:        make([]int, n),
		need:        p.need,
		groups:      make([][]int, len(p.groups)),
		budget:      p.budget,
		maxFromTeam: p.maxFromTeam,
		teamCount:   p.teamCount,
	}
	for newIdx, origIdx := range order {
		q.values[newIdx] = p.values[origIdx]
		q.costs[newIdx] = p.costs[origIdx]
		q.pos[newIdx] = p.pos[origIdx]
		q.team[newIdx] = p.team[origIdx]
	}
	for g, members := range p.groups {
		remapped := make([]int, len(members))
		for i, m := range members {
			remapped[i] = rank[m]
		}
		q.groups[g] = remapped
	}
	return q, order
}

func solveOrdered(p *problem) []int {
	n := len(p.values)
	nPos := len(p.need)
	s := &solver{
		p:         p,
		byPos:     make([][]int, nPos),
		posPrefix: make([][]float64, nPos),
		startRank: make([][]int, nPos),
		minCost:   make([][]int, nPos),
		groupOf:   make([][]int, n),
		groupLast: make([]int, len(p.groups)),
		groupHits: make([]int, len(p.groups)),
		have:      make([]int, nPos),
		teamUsed:  make([]int, p.teamCount),
		chosen:    make([]int, 0, 16),
	}
	for _, q := range p.need {
		s.total += q
	}

	for i := 0; i < n; i++ {
		q := p.pos[i]
		s.byPos[q] = append(s.byPos[q], i)
	}
	for q := 0; q < nPos; q++ {
		list := s.byPos[q]
		prefix := make([]float64, len(list)+1)
		for k, idx := range list {
			prefix[k+1] = prefix[k] + p.values[idx]
		}
		s.posPrefix[q] = prefix

		ranks := make([]int, n+1)
		k := 0
		for i := 0; i <= n; i++ {
			ranks[i] = k
			if i < n && p.pos[i] == q {
				k++
			}
		}
		s.startRank[q] = ranks

		costs := make([]int, 0, len(list))
		for _, idx := range list {
			costs = append(costs, p.costs[idx])
		}
		sort.Ints(costs)
		mins := make([]int, p.need[q]+1)
		for r := 1; r <= p.need[q]; r++ {
			if r <= len(costs) {
				mins[r] = mins[r-1] + costs[r-1]
			} else {
				mins[r] = mins[r-1]
			}
		}
		s.minCost[q] = mins
	}

	for g, members := range p.groups {
		last := -1
		for _, idx := range members {
			s.groupOf[idx] = append(s.groupOf[idx], g)
			if idx > last {
				last = idx
			}
		}
		s.groupLast[g] = last
	}

	s.dfs(0)
	return s.bestSet
}

func (s *solver) dfs(i int) {
	if len(s.chosen) == s.total {
		for g := range s.groupHits {
			if s.groupHits[g] == 0 {
				return
			}
		}
		if !s.hasBest || s.value > s.best+solveEps {
			s.best = s.value
			s.hasBest = true
			s.bestSet = append(s.bestSet[:0], s.chosen...)
		}
		return
	}
	if i == len(s.p.values) {
		return
	}

	// A still-unmet must-include group with no candidate ahead is dead.
	for g := range s.groupHits {
		if s.groupHits[g] == 0 && s.groupLast[g] < i {
			return
		}
	}

	// Position-quota upper bound over the suffix, plus quota and budget
	// feasibility.
	bound := s.value
	minCompletion := 0
	for q := range s.p.need {
		r := s.p.need[q] - s.have[q]
		if r == 0 {
			continue
		}
		sr := s.startRank[q][i]
		if len(s.byPos[q])-sr < r {
			return
		}
		bound += s.posPrefix[q][sr+r] - s.posPrefix[q][sr]
		minCompletion += s.minCost[q][r]
	}
	if s.costUsed+minCompletion > s.p.budget {
		return
	}
	if s.hasBest && bound <= s.best+solveEps {
		return
	}

	q := s.p.pos[i]
	t := s.p.team[i]
	if s.have[q] < s.p.need[q] && s.teamUsed[t] < s.p.maxFromTeam && s.costUsed+s.p.costs[i] <= s.p.budget {
		s.have[q]++
		s.teamUsed[t]++
		s.costUsed += s.p.costs[i]
		s.value += s.p.values[i]
		s.chosen = append(s.chosen, i)
		for _, g := range s.groupOf[i] {
			s.groupHits[g]++
		}

		s.dfs(i + 1)

		for _, g := range s.groupOf[i] {
			s.groupHits[g]--
		}
		s.chosen = s.chosen[:len(s.chosen)-1]
		s.value -= s.p.values[i]
		s.costUsed -= s.p.costs[i]
		s.teamUsed[t]--
		s.have[q]--
	}

	s.dfs(i + 1)
}
