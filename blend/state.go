package blend

import "github.com/gogpu/gputypes"

// factors holds the premultiplied source and destination factors of each
// operator: result = S*src + D*dst, the same for color and alpha.
var factors = [NumOps][2]gputypes.BlendFactor{
	Clear:       {gputypes.BlendFactorZero, gputypes.BlendFactorZero},
	Src:         {gputypes.BlendFactorOne, gputypes.BlendFactorZero},
	Dst:         {gputypes.BlendFactorZero, gputypes.BlendFactorOne},
	Over:        {gputypes.BlendFactorOne, gputypes.BlendFactorOneMinusSrcAlpha},
	OverReverse: {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOne},
	In:          {gputypes.BlendFactorDstAlpha, gputypes.BlendFactorZero},
	InReverse:   {gputypes.BlendFactorZero, gputypes.BlendFactorSrcAlpha},
	Out:         {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorZero},
	OutReverse:  {gputypes.BlendFactorZero, gputypes.BlendFactorOneMinusSrcAlpha},
	Atop:        {gputypes.BlendFactorDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
	AtopReverse: {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorSrcAlpha},
	Xor:         {gputypes.BlendFactorOneMinusDstAlpha, gputypes.BlendFactorOneMinusSrcAlpha},
}

// State returns the WebGPU blend state that realizes op on premultiplied
// colors in a single programmable-pipeline pass. Every operator fits in
// one pass there, including the ones that need two on the GP.
func State(op Op) gputypes.BlendState {
	f := factors[op]
	c := gputypes.BlendComponent{
		SrcFactor: f[0],
		DstFactor: f[1],
		Operation: gputypes.BlendOperationAdd,
	}
	return gputypes.BlendState{Color: c, Alpha: c}
}
