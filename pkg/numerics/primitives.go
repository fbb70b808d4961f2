// Package numerics defines the integer numerical primitives consumed by the
// pricing engine, together with a reference implementation. All functions are
// integer-in, integer-out; callers and implementations agree on fixed-point
// scales rather than floating point.
package numerics

import "math/big"

// Primitives is the capability the pricing engine is constructed with. An
// implementation may be swapped out as long as it honors the stated
// contracts, since the engine's numeric stability depends only on the output
// ranges and monotonicity guaranteed here.
//
// Contracts:
//   - Sqrt returns the floor integer square root, Sqrt(0) == 0. The input
//     must be non-negative.
//   - LogApprox approximates 1e4 * ln(ratio/1e4) for a positive ratio at
//     scale E4. It must be monotonic increasing and return 0 at ratio == 1e4.
//   - NormalCdfApprox approximates 1e8 * Phi(z/1e4) for z at scale E4. The
//     result must lie in [0, 1e8], be non-decreasing in z, and equal 5e7 at
//     z == 0.
type Primitives interface {
	Sqrt(x *big.Int) *big.Int
	LogApprox(ratioE4 *big.Int) *big.Int
	NormalCdfApprox(zE4 *big.Int) *big.Int
}
