package blend

import "github.com/gogpu/exa/gp"

// Pass is one configuration of the GP alpha blender.
type Pass struct {
	Operation gp.AlphaOp
	Mode      gp.AlphaMode
	Channel   gp.Channel
}

// Two slots per operator. Single-pass operators leave the second slot zero.
// For two-pass operators the first slot blends the source into a copy of
// the destination and the second blends that copy back.
var passTable = [NumOps][2]Pass{
	Clear: {
		{gp.AlphaTimesA, gp.ConstantAlpha, gp.ChannelASource}, {},
	},
	Src: {
		{gp.AlphaTimesA, gp.AlphaEqualsOne, gp.ChannelASource}, {},
	},
	Dst: {
		{gp.AlphaTimesA, gp.AlphaEqualsOne, gp.ChannelADest}, {},
	},
	Over: {
		{gp.AlphaAPlusBetaB, gp.ChannelAAlpha, gp.ChannelASource}, {},
	},
	OverReverse: {
		{gp.AlphaAPlusBetaB, gp.ChannelAAlpha, gp.ChannelADest}, {},
	},
	In: {
		{gp.AlphaTimesA, gp.ChannelBAlpha, gp.ChannelASource}, {},
	},
	InReverse: {
		{gp.AlphaTimesA, gp.ChannelBAlpha, gp.ChannelADest}, {},
	},
	Out: {
		{gp.BetaTimesB, gp.ChannelAAlpha, gp.ChannelASource}, {},
	},
	OutReverse: {
		{gp.BetaTimesB, gp.ChannelAAlpha, gp.ChannelADest}, {},
	},
	Atop: {
		{gp.AlphaTimesA, gp.ChannelBAlpha, gp.ChannelADest},
		{gp.BetaTimesB, gp.ChannelAAlpha, gp.ChannelASource},
	},
	AtopReverse: {
		{gp.AlphaTimesA, gp.ChannelBAlpha, gp.ChannelASource},
		{gp.BetaTimesB, gp.ChannelAAlpha, gp.ChannelADest},
	},
	Xor: {
		{gp.BetaTimesB, gp.ChannelAAlpha, gp.ChannelASource},
		{gp.BetaTimesB, gp.ChannelAAlpha, gp.ChannelASource},
	},
}

// Passes returns both blender slots for op. It panics if op is not valid.
func Passes(op Op) [2]Pass { return passTable[op] }

// First returns the first blender slot for op.
func First(op Op) Pass { return passTable[op][0] }

// Second returns the second blender slot for op, the zero Pass for
// single-pass operators.
func Second(op Op) Pass { return passTable[op][1] }

// PassCount returns 2 for two-pass operators and 1 otherwise.
func PassCount(op Op) int {
	if UsesPasses(op) {
		return 2
	}
	return 1
}
