package vehicle

import (
	"strings"

	"github.com/lintang-b-s/navigatorx-core/pkg"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
)

// EncodingManager. hands out disjoint access and turn flag bits to its encoders.
type EncodingManager struct {
	encoders      []FlagEncoder
	nextAccessBit int
	nextTurnBit   int
}

func NewEncodingManager(encoders ...FlagEncoder) (*EncodingManager, error) {
	em := &EncodingManager{encoders: make([]FlagEncoder, 0, len(encoders))}
	for _, enc := range encoders {
		if err := em.register(enc); err != nil {
			return nil, err
		}
	}
	return em, nil
}

func (em *EncodingManager) register(enc FlagEncoder) error {
	if enc.IsRegistered() {
		return util.WrapErrorf(nil, util.ErrConfiguration, "flag encoder %s is already registered", enc.Name())
	}
	if em.Supports(enc.Name()) {
		return util.WrapErrorf(nil, util.ErrConfiguration, "duplicate flag encoder %s", enc.Name())
	}

	definer, ok := enc.(bitDefiner)
	if !ok {
		return util.WrapErrorf(nil, util.ErrConfiguration, "flag encoder %s cannot be registered", enc.Name())
	}
	if em.nextAccessBit+definer.accessBits() > pkg.MAX_ACCESS_FLAG_BITS {
		return util.WrapErrorf(nil, util.ErrConfiguration, "not enough access bits for flag encoder %s", enc.Name())
	}
	if em.nextTurnBit+definer.turnBits() > pkg.MAX_TURN_FLAG_BITS {
		return util.WrapErrorf(nil, util.ErrConfiguration, "not enough turn flag bits for flag encoder %s", enc.Name())
	}

	definer.defineBits(em.nextAccessBit, em.nextTurnBit)
	em.nextAccessBit += definer.accessBits()
	em.nextTurnBit += definer.turnBits()
	em.encoders = append(em.encoders, enc)
	return nil
}

func (em *EncodingManager) Supports(name string) bool {
	for _, enc := range em.encoders {
		if enc.Name() == name {
			return true
		}
	}
	return false
}

func (em *EncodingManager) GetEncoder(name string) (FlagEncoder, error) {
	for _, enc := range em.encoders {
		if enc.Name() == name {
			return enc, nil
		}
	}
	return nil, util.WrapErrorf(nil, util.ErrNotFound, "flag encoder %s not found", name)
}

func (em *EncodingManager) GetEncoders() []FlagEncoder {
	return em.encoders
}

func (em *EncodingManager) String() string {
	names := make([]string, 0, len(em.encoders))
	for _, enc := range em.encoders {
		names = append(names, enc.Name())
	}
	return strings.Join(names, ",")
}
