package vehicle

import (
	"math"
	"math/bits"

	"github.com/lintang-b-s/navigatorx-core/pkg"
	"github.com/lintang-b-s/navigatorx-core/pkg/util"
)

// FlagEncoder. vehicle profile: decodes the access bits of an edge and the turn flags of a
// turn-cost entry for one vehicle. the bit positions are only known after the encoder was
// registered at an EncodingManager.
type FlagEncoder interface {
	Name() string
	IsRegistered() bool

	IsForward(access pkg.AccessFlags) bool
	IsBackward(access pkg.AccessFlags) bool
	AccessFlags(forward, backward bool) pkg.AccessFlags

	IsTurnRestricted(flags pkg.TurnFlags) bool
	GetTurnCost(flags pkg.TurnFlags) float64
	TurnFlags(restricted bool, cost float64) pkg.TurnFlags
}

// bitDefiner. implemented by encoders that can be registered at an EncodingManager.
type bitDefiner interface {
	accessBits() int
	turnBits() int
	defineBits(accessShift, turnShift int)
}

type VehicleFlagEncoder struct {
	name        string
	maxTurnCost int
	costBits    int

	registered  bool
	accessShift int
	turnShift   int
}

func NewFlagEncoder(name string, maxTurnCost int) *VehicleFlagEncoder {
	if maxTurnCost < 1 {
		maxTurnCost = pkg.DEFAULT_MAX_TURN_COST
	}
	return &VehicleFlagEncoder{
		name:        name,
		maxTurnCost: maxTurnCost,
		costBits:    bits.Len(uint(maxTurnCost)),
	}
}

func NewCarFlagEncoder(maxTurnCost int) *VehicleFlagEncoder {
	return NewFlagEncoder("car", maxTurnCost)
}

func NewBikeFlagEncoder(maxTurnCost int) *VehicleFlagEncoder {
	return NewFlagEncoder("bike", maxTurnCost)
}

// NewEncoderByName. encoder for a vehicle name from the config.
func NewEncoderByName(name string, maxTurnCost int) (*VehicleFlagEncoder, error) {
	switch name {
	case "car":
		return NewCarFlagEncoder(maxTurnCost), nil
	case "bike":
		return NewBikeFlagEncoder(maxTurnCost), nil
	default:
		return nil, util.WrapErrorf(nil, util.ErrConfiguration, "unknown vehicle %q", name)
	}
}

func (e *VehicleFlagEncoder) Name() string {
	return e.name
}

func (e *VehicleFlagEncoder) String() string {
	return e.name
}

func (e *VehicleFlagEncoder) IsRegistered() bool {
	return e.registered
}

func (e *VehicleFlagEncoder) accessBits() int {
	return 2
}

// restricted bit followed by the turn cost bits
func (e *VehicleFlagEncoder) turnBits() int {
	return 1 + e.costBits
}

func (e *VehicleFlagEncoder) defineBits(accessShift, turnShift int) {
	e.accessShift = accessShift
	e.turnShift = turnShift
	e.registered = true
}

func (e *VehicleFlagEncoder) IsForward(access pkg.AccessFlags) bool {
	return access&(1<<e.accessShift) != 0
}

func (e *VehicleFlagEncoder) IsBackward(access pkg.AccessFlags) bool {
	return access&(1<<(e.accessShift+1)) != 0
}

func (e *VehicleFlagEncoder) AccessFlags(forward, backward bool) pkg.AccessFlags {
	var access pkg.AccessFlags
	if forward {
		access |= 1 << e.accessShift
	}
	if backward {
		access |= 1 << (e.accessShift + 1)
	}
	return access
}

func (e *VehicleFlagEncoder) restrictedBit() pkg.TurnFlags {
	return 1 << e.turnShift
}

func (e *VehicleFlagEncoder) costValue(flags pkg.TurnFlags) int {
	mask := pkg.TurnFlags(1<<e.costBits - 1)
	return int((flags >> (e.turnShift + 1)) & mask)
}

// IsTurnRestricted. restricted bit set, or the stored cost saturated at maxTurnCost.
func (e *VehicleFlagEncoder) IsTurnRestricted(flags pkg.TurnFlags) bool {
	if flags&e.restrictedBit() != 0 {
		return true
	}
	return e.costValue(flags) >= e.maxTurnCost
}

func (e *VehicleFlagEncoder) GetTurnCost(flags pkg.TurnFlags) float64 {
	if e.IsTurnRestricted(flags) {
		return pkg.INF_TURN_COST
	}
	return float64(e.costValue(flags))
}

// TurnFlags. costs are rounded and a cost >= maxTurnCost is stored as a restriction.
func (e *VehicleFlagEncoder) TurnFlags(restricted bool, cost float64) pkg.TurnFlags {
	c := int(math.Round(cost))
	if c < 0 {
		c = 0
	}
	if c >= e.maxTurnCost {
		restricted = true
		c = e.maxTurnCost
	}

	flags := pkg.TurnFlags(c) << (e.turnShift + 1)
	if restricted {
		flags |= e.restrictedBit()
	}
	return flags
}
