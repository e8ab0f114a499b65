package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Layout
	AppContainer lipgloss.Style

	// Header / Footer
	Header       lipgloss.Style
	HeaderTitle  lipgloss.Style
	HeaderStatus lipgloss.Style
	Footer       lipgloss.Style
	FooterKey    lipgloss.Style
	FooterDesc   lipgloss.Style

	// Panels
	Panel       lipgloss.Style
	PanelActive lipgloss.Style
	PanelTitle  lipgloss.Style

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
	TabHint     lipgloss.Style
	TabHintHot  lipgloss.Style

	// Table
	TableHeader  lipgloss.Style
	TableRow     lipgloss.Style
	TableRowSel  lipgloss.Style
	TableCellDim lipgloss.Style

	// Status colors
	StatusUp   lipgloss.Style
	StatusDown lipgloss.Style
	StatusWarn lipgloss.Style

	// Sparkline
	SparklineStyle lipgloss.Style

	// Editor
	EditorText  lipgloss.Style
	EditorCur   lipgloss.Style
	EditorSel   lipgloss.Style
	EditorMatch lipgloss.Style

	// Schedule
	TaskTime lipgloss.Style
	TaskDone lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style
	SearchBar   lipgloss.Style

	// Form
	FormLabel  lipgloss.Style
	FormInput  lipgloss.Style
	FormCursor lipgloss.Style

	// Theme is kept for components that compute colors, such as the latency
	// gradient.
	Theme Theme
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Theme: theme,

		AppContainer: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base00),

		Header: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base01).
			Bold(true).
			Padding(0, 1),
		HeaderTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		HeaderStatus: lipgloss.NewStyle().
			Foreground(theme.Base0B),

		Footer: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Background(theme.Base01).
			Padding(0, 1),
		FooterKey: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		FooterDesc: lipgloss.NewStyle().
			Foreground(theme.Base04),

		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base03),
		PanelActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D),
		PanelTitle: lipgloss.NewStyle().
			Foreground(theme.Base0E).
			Bold(true),

		TabActive: lipgloss.NewStyle().
			Foreground(theme.Base0B).
			Bold(true).
			Underline(true).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().
			Foreground(theme.Base04).
			Padding(0, 1),
		TabHint: lipgloss.NewStyle().
			Foreground(theme.Base04),
		TabHintHot: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base0A).
			Bold(true).
			Padding(0, 1),

		TableHeader: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		TableRow: lipgloss.NewStyle().
			Foreground(theme.Base05),
		TableRowSel: lipgloss.NewStyle().
			Foreground(theme.Base05).
			Background(theme.Base02).
			Bold(true),
		TableCellDim: lipgloss.NewStyle().
			Foreground(theme.Base03),

		StatusUp: lipgloss.NewStyle().
			Foreground(theme.Base0B),
		StatusDown: lipgloss.NewStyle().
			Foreground(theme.Base08),
		StatusWarn: lipgloss.NewStyle().
			Foreground(theme.Base0A),

		SparklineStyle: lipgloss.NewStyle().
			Foreground(theme.Base0C),

		EditorText: lipgloss.NewStyle().
			Foreground(theme.Base05),
		EditorCur: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base05),
		EditorSel: lipgloss.NewStyle().
			Foreground(theme.Base06).
			Background(theme.Base02),
		EditorMatch: lipgloss.NewStyle().
			Foreground(theme.Base00).
			Background(theme.Base0A),

		TaskTime: lipgloss.NewStyle().
			Foreground(theme.Base0A).
			Bold(true),
		TaskDone: lipgloss.NewStyle().
			Foreground(theme.Base03).
			Strikethrough(true),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0D).
			BorderBackground(theme.Base00).
			Background(theme.Base00).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Base0D).
			Bold(true),
		SearchBar: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Base0C).
			Foreground(theme.Base0A).
			Padding(0, 1),

		FormLabel: lipgloss.NewStyle().
			Foreground(theme.Base04),
		FormInput: lipgloss.NewStyle().
			Foreground(theme.Base06).
			Background(theme.Base02),
		FormCursor: lipgloss.NewStyle().
			Foreground(theme.Base0B),
	}
}
