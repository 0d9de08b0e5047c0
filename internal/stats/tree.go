package stats

import (
	apperrors "expenshare/internal/errors"
	"expenshare/internal/models"
)

// Node is a category with its children materialized and a rolled-up value.
type Node struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Level    int     `json:"level"`
	ParentID *string `json:"parent_id,omitempty"`
	Value    float64 `json:"value"`
	Children []*Node `json:"children,omitempty"`
}

// BuildForest reconstructs the category forest from flat rows. The walk is
// iterative with a visited set: a self-referential or cyclic parent chain, a
// parent reference outside the row set, or a chain deeper than the level cap
// returns CORRUPT_DATA instead of recursing forever.
func BuildForest(categories []models.Category) ([]*Node, error) {
	if len(categories) == 0 {
		return []*Node{}, nil
	}

	byParent := make(map[string][]models.Category)
	ids := make(map[string]bool, len(categories))
	var roots []models.Category
	for _, cat := range categories {
		ids[cat.ID] = true
		if cat.ParentID == nil || *cat.ParentID == "" {
			roots = append(roots, cat)
		} else {
			byParent[*cat.ParentID] = append(byParent[*cat.ParentID], cat)
		}
	}

	type frame struct {
		cat   models.Category
		node  *Node
		level int
	}

	forest := make([]*Node, 0, len(roots))
	visited := make(map[string]bool, len(categories))
	var stack []frame

	for _, root := range roots {
		node := &Node{ID: root.ID, Name: root.Name, Level: 1}
		forest = append(forest, node)
		stack = append(stack, frame{cat: root, node: node, level: 1})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[f.cat.ID] {
			return nil, apperrors.WithMessage(apperrors.ErrCorruptData, "cycle detected in category hierarchy")
		}
		visited[f.cat.ID] = true

		if f.level > models.MaxCategoryDepth {
			return nil, apperrors.WithMessage(apperrors.ErrCorruptData, "category hierarchy exceeds maximum depth")
		}

		for _, child := range byParent[f.cat.ID] {
			parentID := f.cat.ID
			childNode := &Node{
				ID:       child.ID,
				Name:     child.Name,
				Level:    f.level + 1,
				ParentID: &parentID,
			}
			f.node.Children = append(f.node.Children, childNode)
			stack = append(stack, frame{cat: child, node: childNode, level: f.level + 1})
		}
	}

	// Rows never reached from a root sit on a broken parent chain (either a
	// cycle among themselves or a parent id pointing at a missing row).
	if len(visited) != len(ids) {
		return nil, apperrors.WithMessage(apperrors.ErrCorruptData, "unreachable categories in hierarchy")
	}

	return forest, nil
}
