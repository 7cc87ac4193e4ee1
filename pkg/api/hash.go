package api

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Hash returns a deterministic BLAKE3 hash of the payload content.
// Object member order is significant, matching how the payload renders.
func (p ResponsePayload) Hash() string {
	h := blake3.New()

	h.Write([]byte(p.Response))
	h.Write([]byte{0})

	for _, v := range []Value{p.Execution, p.Meta, p.Notes, p.Intent, p.Breadcrumbs, p.UIForcePlan} {
		b, err := v.MarshalJSON()
		if err != nil {
			// Only over-deep Go-built values fail to encode; hash their kind instead.
			b = []byte(v.Kind().String())
		}
		h.Write(b)
		h.Write([]byte{0})
	}

	sum := h.Sum(nil)
	return hex.EncodeToString(sum)
}
