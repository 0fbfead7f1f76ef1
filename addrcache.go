package vcdiff

// Copy addressing modes fixed by the format. Modes 2..2+nearSize-1 address
// relative to a slot of the near cache, and the remaining sameSize modes
// address the same cache directly.
const (
	modeSelf byte = 0
	modeHere byte = 1
)

// addressCache holds the two per-window caches used to decode COPY
// addresses: a ring of the most recently seen addresses and a direct-mapped
// table keyed by address modulo sameSize*256. Both are reset at the start
// of every window.
type addressCache struct {
	near     []uint64
	same     []uint64
	nextNear int
}

func newAddressCache(nearSize, sameSize int) *addressCache {
	return &addressCache{
		near: make([]uint64, nearSize),
		same: make([]uint64, sameSize*256),
	}
}

func (c *addressCache) reset() {
	for i := range c.near {
		c.near[i] = 0
	}
	for i := range c.same {
		c.same[i] = 0
	}
	c.nextNear = 0
}

// decode resolves one COPY address. here is the current position in the
// combined source+target byte space; addrs is the window's address section.
// Every successfully resolved address updates both caches, whatever mode
// produced it.
func (c *addressCache) decode(here uint64, mode byte, addrs *buffer) (uint64, error) {
	var addr uint64
	switch {
	case mode == modeSelf:
		v, err := addrs.readVarint()
		if err != nil {
			return 0, err
		}
		addr = v
	case mode == modeHere:
		v, err := addrs.readVarint()
		if err != nil {
			return 0, err
		}
		if v > here {
			return 0, newErrorf(ErrCodeInvalidAddress, "here-mode distance %d exceeds position %d", v, here)
		}
		addr = here - v
	case int(mode)-2 < len(c.near):
		v, err := addrs.readVarint()
		if err != nil {
			return 0, err
		}
		addr = c.near[mode-2] + v
		if addr < v {
			return 0, newErrorf(ErrCodeInvalidAddress, "near-mode address overflows")
		}
	case int(mode)-2-len(c.near) < len(c.same)/256:
		b, err := addrs.readByte()
		if err != nil {
			return 0, err
		}
		addr = c.same[(int(mode)-2-len(c.near))*256+int(b)]
	default:
		return 0, newErrorf(ErrCodeInvalidAddress, "copy mode %d out of range", mode)
	}
	if addr >= here {
		return 0, newErrorf(ErrCodeInvalidAddress, "address %d not below position %d", addr, here)
	}
	c.update(addr)
	return addr, nil
}

func (c *addressCache) update(addr uint64) {
	if len(c.near) > 0 {
		c.near[c.nextNear] = addr
		c.nextNear = (c.nextNear + 1) % len(c.near)
	}
	if len(c.same) > 0 {
		c.same[addr%uint64(len(c.same))] = addr
	}
}
