package kvedit

import (
	"strconv"

	"github.com/google/uuid"
)

// IDSource generates row ids. Ids must never repeat within one editor.
type IDSource interface {
	NextID() string
}

type timeOrderedIDs struct {
	prefix string
}

// NewIDSource returns ids made of prefix and a time-ordered UUID.
func NewIDSource(prefix string) IDSource {
	return timeOrderedIDs{prefix: prefix}
}

func (s timeOrderedIDs) NextID() string {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return s.prefix + "-" + id.String()
}

// CounterIDs yields prefix-1, prefix-2, ... It gives stable ids in tests.
type CounterIDs struct {
	Prefix string
	n      int
}

func (c *CounterIDs) NextID() string {
	c.n++
	return c.Prefix + "-" + strconv.Itoa(c.n)
}
