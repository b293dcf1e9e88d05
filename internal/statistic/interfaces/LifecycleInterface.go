package interfaces

// LifecycleInterface is what the app drives around a session: Restore before
// the first command, Init/Stop around a long-running console, Persist on the
// way out. One-shot commands only call Restore and Persist.
type LifecycleInterface interface {
	// Init starts the periodic snapshot save and the reminder broadcast.
	Init()
	// Stop halts both loops and waits for them; a final save is the caller's.
	Stop()
	Restore() error
	Persist() error
}
