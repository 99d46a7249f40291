package ecs

// UpdateFrame is handed to every system during one scheduler update.
type UpdateFrame struct {
	DeltaTime float64
	Elapsed   float64
	Commands  *Commands
	Storage   *Storage
}

func newUpdateFrame(dt, elapsed float64, commands *Commands, storage *Storage) *UpdateFrame {
	return &UpdateFrame{
		DeltaTime: dt,
		Elapsed:   elapsed,
		Commands:  commands,
		Storage:   storage,
	}
}
