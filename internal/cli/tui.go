package cli

import (
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/mosaic/pkg/render/term"
	"github.com/matzehuels/mosaic/pkg/tree"
	"github.com/matzehuels/mosaic/pkg/treemap"
)

// =============================================================================
// BrowseModel - Interactive treemap navigation
// =============================================================================

// crumb is one level of the zoom path: a branch plus the child index the
// cursor rests on.
type crumb struct {
	node   *tree.Node
	cursor int
}

// BrowseModel is the bubbletea model for interactive treemap navigation.
// The arrow keys move a highlight across the children of the current
// branch; enter zooms into the selected branch and esc backs out.
type BrowseModel struct {
	stack  []crumb // zoom path; stack[0] is the document root
	width  int
	height int
}

// NewBrowseModel creates a browse model rooted at the given document.
func NewBrowseModel(root *tree.Node) BrowseModel {
	return BrowseModel{
		stack:  []crumb{{node: root}},
		width:  80,
		height: 24,
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc", "backspace":
			if len(m.stack) > 1 {
				m.stack = m.stack[:len(m.stack)-1]
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			return m.moveCursor(0, -1), nil
		case "down", "j":
			return m.moveCursor(0, 1), nil
		case "left", "h":
			return m.moveCursor(-1, 0), nil
		case "right", "l":
			return m.moveCursor(1, 0), nil
		case "enter":
			return m.zoomIn(), nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(m.breadcrumb())
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←↑↓→ move  ⏎ zoom in  esc zoom out  q quit"))
	b.WriteString("\n\n")

	l, err := m.layout()
	if err != nil {
		b.WriteString(StyleDim.Render("cannot lay out this branch: " + err.Error()))
		return b.String()
	}

	opts := []term.Option{term.WithSize(m.gridWidth(), m.gridHeight())}
	if path := selectedPath(childTiles(l), m.current().cursor); path != "" {
		opts = append(opts, term.WithHighlight(path))
	}
	b.WriteString(term.Render(l, opts...))

	return b.String()
}

// =============================================================================
// Navigation
// =============================================================================

// current returns the branch being displayed.
func (m BrowseModel) current() crumb {
	return m.stack[len(m.stack)-1]
}

// layout computes tile geometry for the current branch at terminal size.
func (m BrowseModel) layout() (*treemap.Layout, error) {
	bounds := treemap.Rect{W: float64(m.gridWidth()), H: float64(m.gridHeight())}
	return treemap.Compute(m.current().node, bounds)
}

// moveCursor shifts the highlight to the nearest child tile in the given
// direction. Out-of-layout presses keep the cursor where it is.
func (m BrowseModel) moveCursor(dx, dy float64) BrowseModel {
	l, err := m.layout()
	if err != nil {
		return m
	}
	tiles := childTiles(l)
	if len(tiles) == 0 {
		return m
	}

	pos := 0
	for i, t := range tiles {
		if t.Index == m.current().cursor {
			pos = i
			break
		}
	}
	next := nearestTile(tiles, pos, dx, dy)
	m.stack[len(m.stack)-1].cursor = tiles[next].Index
	return m
}

// zoomIn descends into the selected child when it is a branch with
// positive weight. Leaves and weightless subtrees stay where they are.
func (m BrowseModel) zoomIn() BrowseModel {
	children := m.current().node.Children()
	cursor := m.current().cursor
	if cursor >= len(children) {
		return m
	}
	child := children[cursor]
	if child.IsLeaf() || child.TotalWeight() <= 0 {
		return m
	}
	m.stack = append(m.stack, crumb{node: child})
	return m
}

// breadcrumb renders the zoom path with the current branch highlighted.
func (m BrowseModel) breadcrumb() string {
	parts := make([]string, len(m.stack))
	for i, cr := range m.stack {
		name := cr.node.Name()
		if name == "" {
			name = "(unnamed)"
		}
		if i == len(m.stack)-1 {
			parts[i] = StyleTitle.Render(name)
		} else {
			parts[i] = StyleDim.Render(name)
		}
	}
	return strings.Join(parts, StyleDim.Render(" › "))
}

// gridWidth returns the character grid width for the treemap.
func (m BrowseModel) gridWidth() int {
	if m.width < 20 {
		return 20
	}
	return m.width
}

// gridHeight returns the character grid height, leaving room for the
// breadcrumb and help lines.
func (m BrowseModel) gridHeight() int {
	h := m.height - 4
	if h < 6 {
		return 6
	}
	return h
}

// =============================================================================
// Tile Geometry Helpers
// =============================================================================

// childTiles returns the depth-1 tiles of the layout. Tile.Index ties
// each one back to its child position, including zero-weight children.
func childTiles(l *treemap.Layout) []treemap.Tile {
	var tiles []treemap.Tile
	for _, t := range l.Tiles {
		if t.Depth == 1 {
			tiles = append(tiles, t)
		}
	}
	return tiles
}

// selectedPath returns the path of the child tile under the cursor.
func selectedPath(tiles []treemap.Tile, cursor int) string {
	for _, t := range tiles {
		if t.Index == cursor {
			return t.Path
		}
	}
	return ""
}

// nearestTile picks the tile whose center is closest to the current
// tile's center in direction (dx, dy). Sideways drift is penalized so
// movement tracks the pressed arrow; with no candidate in that direction
// the cursor stays put.
func nearestTile(tiles []treemap.Tile, cur int, dx, dy float64) int {
	if cur >= len(tiles) {
		return 0
	}
	fx, fy := tiles[cur].Rect.CenterX(), tiles[cur].Rect.CenterY()

	best := cur
	bestScore := math.Inf(1)
	for i, t := range tiles {
		if i == cur {
			continue
		}
		vx := t.Rect.CenterX() - fx
		vy := t.Rect.CenterY() - fy
		along := vx*dx + vy*dy
		if along <= 1e-9 {
			continue
		}
		cross := math.Abs(vx*dy) + math.Abs(vy*dx)
		if score := along + 3*cross; score < bestScore {
			bestScore = score
			best = i
		}
	}
	return best
}
