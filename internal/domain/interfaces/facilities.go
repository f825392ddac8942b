package interfaces

// Clipboard writes text to the system clipboard. Best-effort.
type Clipboard interface {
	WriteText(text string) error
}
