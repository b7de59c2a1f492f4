package slot

import "errors"

var (
	ErrSlotNotFound  = errors.New("slot definition not found")
	ErrSlotInvalid   = errors.New("invalid slot definition")
	ErrSlotDuplicate = errors.New("an active slot with this window already exists")
	// ErrSlotModified is returned when an update raced another write.
	ErrSlotModified = errors.New("slot definition was modified concurrently")
)
