package windowstate

// Usage is printed for --help and for an empty invocation.
const Usage = `window-state - Utility to interact with window states

Usage:
	window-state [...filters] [...operations]
	window-state <handle> [...operations]
	window-state * [...operations]

Filters:
	--foreground         Select the focused window currently active.
	--handle <handle>    Select a window by its numeric handle id (repeatable, max 64).
	--desktop            Select all children of the top-level desktop window.
	--parent <handle>    Select all children of a specific window.

Operations:
	--move <x> <y>       Move matching windows to a specific position.
	--size <w> <h>       Resize matching windows to a specified size.
	--show               Show matching windows.
	--hide               Hide matching windows.
	--maximize           Maximize matching windows.
	--minimize           Minimize matching windows.
	--set-foreground     Set the first match as the focused window.
	--set-top            Bring the first matching window to top.
	--set-top-most       Bring the first matching window to the top-most layer.

Modifiers:
	--strict             Stop at the first failed operation on desktop and parent walks.

Without operations, matching windows are printed as a JSON array.
Numbers may be decimal or 0x-prefixed hexadecimal.
`
