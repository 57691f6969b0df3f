// Package action defines the editor's closed set of atomic operations and
// the tree-shaped key-binding targets built from them.
//
// Go has no enum-with-payload, so the Rust Action/ActionEffect sum types
// (original_source/src/editor/action.rs) become a tagged struct: Kind
// selects the variant and only the fields that variant uses are
// meaningful. Constructors below are the only supported way to build a
// value, keeping the set of reachable (Kind, fields) combinations closed.
package action

// Kind identifies which atomic operation an Action represents.
type Kind int

const (
	MoveUp Kind = iota
	MoveDown
	MoveLeft
	MoveRight
	MoveLineStart
	MoveLineEnd
	MoveToTop
	MoveToBottom
	MoveToNextWord
	MoveToPrevWord
	MoveToNextWordEnd
	MoveToPrevWordEnd
	InsertCharAtCursorPos
	DeleteCharAt
	DeletePreviousChar
	DeleteWord
	DeleteCurrentLine
	DeleteLineAt
	InsertLineAt
	InsertLineBelowCursor
	InsertLineAboveCursor
	InsertLineAtCursor
	ReplaceLineAt
	EnterMode
	Quit
	Save
	SaveAs
	Undo
	UndoMultiple
	GoToLine
	MoveTo
	SetCursor
	MoveLineToViewportCenter
	PageUp
	PageDown
	ScrollUp
	ScrollDown
	FindNext
	FindPrev
	InsertTab
	InsertNewLine
	OpenBuffer
	OpenFile
	NextBuffer
	PrevBuffer
	CloseBuffer
	FilePicker
	ShowDialog
	CloseDialog
	OpenPicker
	Picked
	PluginCommand
	Command
	RefreshDiagnostics
	Hover
	GoToDefinition
	Print
	Suspend
	ToggleWrap
	IncreaseLeft
	DecreaseLeft
	Click
	DumpBuffer
	SetWaitingKeyAction
	InsertStrAt
)

// GoToLinePosition governs where GoToLine places its target line in the
// viewport when the line isn't already reachable by a simple cy
// adjustment.
type GoToLinePosition int

const (
	PositionTop GoToLinePosition = iota
	PositionCenter
	PositionBottom
)

// Mode is the editor's modal state.
type Mode int

const (
	Normal Mode = iota
	Insert
	CommandMode
	Search
	Visual
	VisualLine
	VisualBlock
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case CommandMode:
		return "COMMAND"
	case Search:
		return "SEARCH"
	case Visual:
		return "VISUAL"
	case VisualLine:
		return "V-LINE"
	case VisualBlock:
		return "V-BLOCK"
	default:
		return "?"
	}
}

// Action is a single atomic editor operation. Only the fields relevant to
// Kind are populated; all others are zero.
type Action struct {
	Kind Kind

	Rune rune
	Text string
	Path string
	N    int // repeat count / line number / id
	// X, Y are explicit character/line coordinates for actions that name
	// a position (DeleteCharAt, DeleteLineAt, MoveTo, SetCursor). A
	// negative X or Y means "the current cursor position", letting a
	// static key binding reference DeleteCharAt without knowing the
	// cursor ahead of time; the executor resolves it at apply time.
	X, Y int
	Force bool
	Mode  Mode
	Pos   GoToLinePosition

	Title string
	Items []string
	ID    string

	Actions []Action // UndoMultiple / Multiple
}

// Simple constructors for the zero-argument variants, following the
// teacher's builder-style constructor idiom (the parameterized ones follow
// below).
func NewMoveUp() Action          { return Action{Kind: MoveUp} }
func NewMoveDown() Action        { return Action{Kind: MoveDown} }
func NewMoveLeft() Action        { return Action{Kind: MoveLeft} }
func NewMoveRight() Action       { return Action{Kind: MoveRight} }
func NewMoveLineStart() Action   { return Action{Kind: MoveLineStart} }
func NewMoveLineEnd() Action     { return Action{Kind: MoveLineEnd} }
func NewMoveToTop() Action       { return Action{Kind: MoveToTop} }
func NewMoveToBottom() Action    { return Action{Kind: MoveToBottom} }
func NewMoveToNextWord() Action  { return Action{Kind: MoveToNextWord} }
func NewMoveToPrevWord() Action  { return Action{Kind: MoveToPrevWord} }
func NewDeleteCurrentLine() Action { return Action{Kind: DeleteCurrentLine} }
func NewDeletePreviousChar() Action { return Action{Kind: DeletePreviousChar} }
func NewDeleteWord() Action      { return Action{Kind: DeleteWord} }
func NewUndo() Action            { return Action{Kind: Undo} }
func NewSave() Action             { return Action{Kind: Save} }
func NewInsertTab() Action        { return Action{Kind: InsertTab} }
func NewInsertNewLine() Action    { return Action{Kind: InsertNewLine} }
func NewInsertLineBelowCursor() Action { return Action{Kind: InsertLineBelowCursor} }
func NewInsertLineAboveCursor() Action { return Action{Kind: InsertLineAboveCursor} }
func NewInsertLineAtCursor() Action    { return Action{Kind: InsertLineAtCursor} }
func NewFilePicker() Action       { return Action{Kind: FilePicker} }
func NewCloseDialog() Action      { return Action{Kind: CloseDialog} }
func NewRefreshDiagnostics() Action { return Action{Kind: RefreshDiagnostics} }
func NewHover() Action            { return Action{Kind: Hover} }
func NewGoToDefinition() Action   { return Action{Kind: GoToDefinition} }
func NewSuspend() Action          { return Action{Kind: Suspend} }
func NewToggleWrap() Action       { return Action{Kind: ToggleWrap} }
func NewIncreaseLeft() Action     { return Action{Kind: IncreaseLeft} }
func NewDecreaseLeft() Action     { return Action{Kind: DecreaseLeft} }
func NewDumpBuffer() Action       { return Action{Kind: DumpBuffer} }
func NewNextBuffer() Action       { return Action{Kind: NextBuffer} }
func NewPrevBuffer() Action       { return Action{Kind: PrevBuffer} }
func NewCloseBuffer() Action      { return Action{Kind: CloseBuffer} }
func NewPageUp() Action           { return Action{Kind: PageUp} }
func NewPageDown() Action         { return Action{Kind: PageDown} }
func NewFindNext() Action         { return Action{Kind: FindNext} }
func NewFindPrev() Action         { return Action{Kind: FindPrev} }

func NewInsertCharAtCursorPos(r rune) Action { return Action{Kind: InsertCharAtCursorPos, Rune: r} }
func NewDeleteCharAt(x, y int) Action         { return Action{Kind: DeleteCharAt, X: x, Y: y} }
func NewDeleteLineAt(y int) Action            { return Action{Kind: DeleteLineAt, Y: y} }
func NewInsertLineAt(y int, text string) Action {
	return Action{Kind: InsertLineAt, Y: y, Text: text}
}
func NewReplaceLineAt(y int, text string) Action {
	return Action{Kind: ReplaceLineAt, Y: y, Text: text}
}
func NewEnterMode(m Mode) Action         { return Action{Kind: EnterMode, Mode: m} }
func NewQuit(force bool) Action          { return Action{Kind: Quit, Force: force} }
func NewSaveAs(path string) Action       { return Action{Kind: SaveAs, Path: path} }
func NewUndoMultiple(actions []Action) Action {
	return Action{Kind: UndoMultiple, Actions: actions}
}
func NewGoToLine(n int, pos GoToLinePosition) Action {
	return Action{Kind: GoToLine, N: n, Pos: pos}
}
func NewMoveTo(x, y int) Action  { return Action{Kind: MoveTo, X: x, Y: y} }
func NewSetCursor(x, y int) Action { return Action{Kind: SetCursor, X: x, Y: y} }
func NewMoveLineToViewportCenter() Action { return Action{Kind: MoveLineToViewportCenter} }
func NewScrollUp(n int) Action   { return Action{Kind: ScrollUp, N: n} }
func NewScrollDown(n int) Action { return Action{Kind: ScrollDown, N: n} }
func NewOpenBuffer(name string) Action { return Action{Kind: OpenBuffer, Text: name} }
func NewOpenFile(path string) Action   { return Action{Kind: OpenFile, Path: path} }
func NewShowDialog() Action            { return Action{Kind: ShowDialog} }
func NewOpenPicker(title string, items []string, id string) Action {
	return Action{Kind: OpenPicker, Title: title, Items: items, ID: id}
}
func NewPicked(item, id string) Action { return Action{Kind: Picked, Text: item, ID: id} }
func NewPluginCommand(cmd string) Action { return Action{Kind: PluginCommand, Text: cmd} }
func NewCommand(cmd string) Action       { return Action{Kind: Command, Text: cmd} }
func NewPrint(msg string) Action         { return Action{Kind: Print, Text: msg} }
func NewClick(x, y int) Action           { return Action{Kind: Click, X: x, Y: y} }
func NewInsertStrAt(x, y int, text string) Action {
	return Action{Kind: InsertStrAt, X: x, Y: y, Text: text}
}
