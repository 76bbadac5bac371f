// Package tickmath converts between a pool tick and its Q64.96 sqrt price,
// the two representations a swap step has to translate between on every
// iteration of the step loop.
package tickmath

import (
	"math/big"
	"sync"

	"github.com/holiman/uint256"

	"github.com/tristero-labs/univ3swap/math/fixedpoint"
)

// ratioConstants holds Q128.128 factors: index 0 is 1/sqrt(1.0001) and index
// 1 is 1.0 (the two seeds chosen by bit 0 of |tick|), index i in 2..20 is
// 1/sqrt(1.0001^(2^(i-1))) for bit i-1, and index 21 is the 32-bit mask used
// by the final rounding step. Each factor is the magic constant baked into
// the canonical on-chain implementation.
var ratioConstants = [22]*uint256.Int{
	uint256.MustFromBig(fromHex("0xfffcb933bd6fad37aa2d162d1a594001")),
	uint256.MustFromBig(fromHex("0x100000000000000000000000000000000")),
	uint256.MustFromBig(fromHex("0xfff97272373d413259a46990580e213a")),
	uint256.MustFromBig(fromHex("0xfff2e50f5f656932ef12357cf3c7fdcc")),
	uint256.MustFromBig(fromHex("0xffe5caca7e10e4e61c3624eaa0941cd0")),
	uint256.MustFromBig(fromHex("0xffcb9843d60f6159c9db58835c926644")),
	uint256.MustFromBig(fromHex("0xff973b41fa98c081472e6896dfb254c0")),
	uint256.MustFromBig(fromHex("0xff2ea16466c96a3843ec78b326b52861")),
	uint256.MustFromBig(fromHex("0xfe5dee046a99a2a811c461f1969c3053")),
	uint256.MustFromBig(fromHex("0xfcbe86c7900a88aedcffc83b479aa3a4")),
	uint256.MustFromBig(fromHex("0xf987a7253ac413176f2b074cf7815e54")),
	uint256.MustFromBig(fromHex("0xf3392b0822b70005940c7a398e4b70f3")),
	uint256.MustFromBig(fromHex("0xe7159475a2c29b7443b29c7fa6e889d9")),
	uint256.MustFromBig(fromHex("0xd097f3bdfd2022b8845ad8f792aa5825")),
	uint256.MustFromBig(fromHex("0xa9f746462d870fdf8a65dc1f90e061e5")),
	uint256.MustFromBig(fromHex("0x70d869a156d2a1b890bb3df62baf32f7")),
	uint256.MustFromBig(fromHex("0x31be135f97d08fd981231505542fcfa6")),
	uint256.MustFromBig(fromHex("0x9aa508b5b7a84e1c677de54f3e99bc9")),
	uint256.MustFromBig(fromHex("0x5d6af8dedb81196699c329225ee604")),
	uint256.MustFromBig(fromHex("0x2216e584f5fa1ea926041bedfe98")),
	uint256.MustFromBig(fromHex("0x48a170391f7dc42444e8fa2")),
	uint256.MustFromBig(fromHex("0xffffffff")),
}

var (
	one        = uint256.NewInt(1)
	maxUint256 = uint256.MustFromBig(fixedpoint.MaxUint256)
)

type scratch struct {
	ratio *uint256.Int
	rem   *uint256.Int
	temp  *big.Int
}

var scratchPool = sync.Pool{
	New: func() any {
		return &scratch{
			ratio: new(uint256.Int),
			rem:   new(uint256.Int),
			temp:  new(big.Int),
		}
	},
}

// GetSqrtRatioAtTick writes sqrt(1.0001^tick) * 2^96 into dest. tick must be
// within [fixedpoint.MinTick, fixedpoint.MaxTick].
func GetSqrtRatioAtTick(dest *big.Int, tick int32) error {
	if tick < fixedpoint.MinTick || tick > fixedpoint.MaxTick {
		return ErrTickOutOfBounds
	}

	s := scratchPool.Get().(*scratch)
	defer scratchPool.Put(s)

	absTick := int64(tick)
	if tick < 0 {
		absTick = -absTick
	}

	if absTick&0x1 != 0 {
		s.ratio.Set(ratioConstants[0])
	} else {
		s.ratio.Set(ratioConstants[1])
	}

	for i := 2; i < 21; i++ {
		if absTick&(1<<(i-1)) != 0 {
			s.ratio.Mul(s.ratio, ratioConstants[i]).Rsh(s.ratio, 128)
		}
	}

	if tick > 0 {
		s.ratio.Div(maxUint256, s.ratio)
	}

	// Downshift from Q128.128 to Q64.96, rounding up on any remainder.
	s.rem.And(s.ratio, ratioConstants[21])
	s.ratio.Rsh(s.ratio, 32)
	if s.rem.Sign() > 0 {
		s.ratio.Add(s.ratio, one)
	}

	dest.Set(s.ratio.ToBig())
	return nil
}

// GetTickAtSqrtRatio returns the greatest tick such that
// GetSqrtRatioAtTick(tick) <= sqrtPriceX96, found by binary search over the
// monotonic tick-to-price mapping.
func GetTickAtSqrtRatio(sqrtPriceX96 *big.Int) (int32, error) {
	if sqrtPriceX96.Cmp(fixedpoint.MinSqrtRatio) < 0 || sqrtPriceX96.Cmp(fixedpoint.MaxSqrtRatio) >= 0 {
		return 0, ErrSqrtRatioOutOfBounds
	}

	s := scratchPool.Get().(*scratch)
	defer scratchPool.Put(s)
	candidate := s.temp

	low, high := fixedpoint.MinTick, fixedpoint.MaxTick
	var tick int32
	for low <= high {
		mid := low + (high-low)/2
		if err := GetSqrtRatioAtTick(candidate, mid); err != nil {
			return 0, err
		}
		if candidate.Cmp(sqrtPriceX96) <= 0 {
			tick = mid
			low = mid + 1
		} else {
			high = mid - 1
		}
	}
	return tick, nil
}

func fromHex(s string) *big.Int {
	n, _ := new(big.Int).SetString(s[2:], 16)
	return n
}
