package classify

import (
	"sort"

	"github.com/standardbeagle/varlens/internal/types"
)

// ScoredVariable pairs a variable with its importance score and the
// classification tags consumers filter on.
type ScoredVariable struct {
	Variable    types.Variable
	Score       int
	System      bool
	Application bool
	ControlFlow bool
}

// RankVariables scores a snapshot's variables and returns them sorted
// by importance descending, name ascending as the deterministic tie
// break. topN <= 0 means no cap.
func (c *Classifier) RankVariables(vars []types.Variable, topN int) []ScoredVariable {
	scored := make([]ScoredVariable, 0, len(vars))
	for _, v := range vars {
		scored = append(scored, ScoredVariable{
			Variable:    v,
			Score:       c.Importance(v.Name, v.Value),
			System:      c.IsSystemVariable(v.Name, v.Value),
			Application: c.IsApplicationRelevant(v.Name, v.Value),
			ControlFlow: c.IsControlFlowVariable(v.Name),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Variable.Name < scored[j].Variable.Name
	})

	if topN > 0 && len(scored) > topN {
		scored = scored[:topN]
	}
	return scored
}
