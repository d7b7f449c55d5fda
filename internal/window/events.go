package window

// Event names delivered to the frontend. Window-scoped events are emitted as
// "<name>/<window-id>" (see Scoped); the rest are broadcast.
const (
	EventOpenFileSelected       = "teex://open-file-selected"
	EventOpenFolderSelected     = "teex://open-folder-selected"
	EventOSOpenPaths            = "teex://os-open-paths"
	EventProjectFolderChanged   = "teex://project-folder-changed"
	EventProjectFileChanged     = "teex://project-file-changed"
	EventToggleSidebar          = "teex://toggle-sidebar"
	EventToggleMarkdownMode     = "teex://toggle-markdown-mode"
	EventCloseActiveFile        = "teex://close-active-file"
	EventNewTab                 = "teex://new-tab"
	EventRequestExportAllTabs   = "teex://request-export-all-tabs"
	EventReceiveTransferredTabs = "teex://receive-transferred-tabs"
	EventTabTransferResult      = "teex://tab-transfer-result"
	EventWindowError            = "teex://window-error"

	// Broadcast events.
	EventSetTheme     = "teex://set-theme"
	EventWindowCreate = "teex://window-create"
	EventWindowClose  = "teex://window-close"
)

// Emitter delivers a named event with a JSON-serializable payload to the frontend.
type Emitter interface {
	Emit(name string, payload any)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(name string, payload any)

// Emit calls f(name, payload).
func (f EmitterFunc) Emit(name string, payload any) {
	f(name, payload)
}

// Scoped returns the event name addressed to a single window.
func Scoped(name string, id ID) string {
	return name + "/" + string(id)
}

// EmitTo emits name to the window identified by id.
func EmitTo(e Emitter, id ID, name string, payload any) {
	e.Emit(Scoped(name, id), payload)
}
