package report

import (
	"fmt"
	"io"
	"sort"

	"github.com/Sorranop01/vdo-content-sub000/internal/model"
)

// ProblemKind labels why a scene falls outside the duration bounds.
type ProblemKind string

const (
	ProblemOversized ProblemKind = "oversized"
	ProblemShort     ProblemKind = "short"
)

// SceneProblem pairs a scene with the bound it breaks and by how much.
type SceneProblem struct {
	Scene  model.Scene
	Kind   ProblemKind
	Excess float64
}

// SelectProblemScenes returns scenes outside the duration bounds, worst first.
func SelectProblemScenes(scenes []model.Scene, c model.Constraints) []SceneProblem {
	problems := make([]SceneProblem, 0, len(scenes))
	for _, sc := range scenes {
		kind, excess := classifyScene(sc, c)
		if kind == "" {
			continue
		}
		problems = append(problems, SceneProblem{Scene: sc, Kind: kind, Excess: excess})
	}
	sort.Slice(problems, func(i, j int) bool {
		if problems[i].Excess == problems[j].Excess {
			return problems[i].Scene.Order < problems[j].Scene.Order
		}
		return problems[i].Excess > problems[j].Excess
	})
	return problems
}

func classifyScene(sc model.Scene, c model.Constraints) (ProblemKind, float64) {
	d := sc.Duration()
	if sc.Oversized || (c.MaxDuration > 0 && d > c.MaxDuration+1e-9) {
		excess := d - c.MaxDuration
		if excess < 0 {
			excess = 0
		}
		return ProblemOversized, excess
	}
	if c.MinDuration > 0 && d < c.MinDuration-1e-9 {
		return ProblemShort, c.MinDuration - d
	}
	return "", 0
}

// RenderProblems prints scenes that need manual attention.
func RenderProblems(w io.Writer, scenes []model.Scene, c model.Constraints) error {
	problems := SelectProblemScenes(scenes, c)
	if len(problems) == 0 {
		_, err := fmt.Fprintln(w, "All scenes within duration bounds.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Problem scenes"); err != nil {
		return err
	}
	headers := []string{"#", "Duration", "Issue"}
	rows := make([][]string, 0, len(problems))
	for _, prob := range problems {
		rows = append(rows, []string{
			fmt.Sprintf("%d", prob.Scene.Order),
			fmt.Sprintf("%.1fs", prob.Scene.Duration()),
			fmt.Sprintf("%s by %.1fs", prob.Kind, prob.Excess),
		})
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 1: true})
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
