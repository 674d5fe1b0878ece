package binding

import "github.com/pkg/errors"

// ErrSlotCollision is returned when two descriptors of a pipeline layout resolve to the same
// backend slot
var ErrSlotCollision = errors.New("descriptor slot collision")
