// Package ui contains the Bubble Tea program that powers the bookmarks popup.
// The Model type focuses on message orchestration while the navigation state
// machine in internal/nav owns every decision about what a key press means.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a
//     focused function.
//   - Key presses are translated by internal/ui/keys into nav.Events. Each
//     event is applied with nav.Transition; the resulting effect (deliver,
//     copy, describe, edit, reload, exit) is carried out in effects.go.
//   - Host interactions run off the update loop through the command bus in
//     internal/ui/command and report back with result messages.
//
// State ownership:
//   - nav.State holds the mode, filter, filter mode and selection.
//   - catalog.Store owns the loaded generation. Reloads replace the model's
//     generation only when the new document parses; otherwise the old list
//     stays on screen next to the error.
//   - internal/ui/state.Viewport keeps the selection visible when the list is
//     taller than the popup.
//
// Backend interactions:
//   - When --watch is set a backend.Watcher reports writes to the document;
//     each event triggers the same reload as the reload key.
package ui
