// Package ui provides the Bubble Tea terminal interface of the gallery.
//
// The screen is a header, a command bar, a tab bar and one bordered content
// box holding the active tab. The node tree of the active tab is flattened
// into rows (tree.go); every row is one line, so a screen cell maps back to a
// row and a control column without any hit-testing state (mouse.go).
//
// The model owns no gallery state. Key presses and clicks are classified
// into tabs.Target values and handed to the tabs.Controller, which returns
// the fetches to run. Each fetch and image probe runs as a tea.Cmd; its
// result comes back as a message and is fed to Controller.Complete or
// Controller.Settle before the rows are rebuilt.
//
// Key bindings are listed in keys.go and in the help overlay (?).
package ui
