// Command univ3sim is CLI glue around the pool package: load a snapshot,
// run one swap against it, print the resulting deltas and post-swap state
// as JSON. It is explicitly an external collaborator, not part of the
// core's public surface (spec.md §1); pool.Pool.Swap never imports it.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/tristero-labs/univ3swap/math/fixedpoint"
	"github.com/tristero-labs/univ3swap/pool"
	"github.com/tristero-labs/univ3swap/snapshot"
	"github.com/tristero-labs/univ3swap/store"
)

var (
	swapsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "univ3sim_swaps_total",
		Help: "Number of swaps executed by the simulator, by outcome.",
	}, []string{"zero_for_one", "outcome"})
	swapDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name: "univ3sim_swap_duration_seconds",
		Help: "Wall-clock time spent computing a single swap.",
	})
)

type swapOutput struct {
	Amount0      fixedpoint.I256 `json:"amount0"`
	Amount1      fixedpoint.I256 `json:"amount1"`
	SqrtPriceX96 string          `json:"sqrt_price_x96"`
	Tick         int32           `json:"tick"`
	Liquidity    string          `json:"liquidity"`
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	prometheus.DefaultRegisterer.MustRegister(swapsTotal, swapDuration)

	if err := run(logger); err != nil {
		logger.Error("univ3sim failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	configPath := flag.String("config", "config.yaml", "Path to the YAML configuration file.")
	snapshotPath := flag.String("snapshot", "", "Path to the pool snapshot JSON file.")
	zeroForOne := flag.Bool("zero-for-one", true, "Swap direction: true pays token0 to receive token1.")
	amountSpecified := flag.String("amount", "", "Signed decimal amount: positive is exact-input, negative is exact-output.")
	sqrtPriceLimit := flag.String("sqrt-price-limit", "", "Sqrt price limit (decimal Q64.96). Defaults to one unit inside the MIN/MAX bound for the chosen direction.")
	storePath := flag.String("store", "", "Optional sqlite path to append this swap's result to.")
	poolAddress := flag.String("pool-address", "", "Address identifying the pool in the optional swap-history store.")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *snapshotPath == "" {
		*snapshotPath = cfg.Snapshot.Path
	}
	if *storePath == "" {
		*storePath = cfg.Store.Path
	}
	if *snapshotPath == "" {
		return fmt.Errorf("missing -snapshot (and no snapshot.path in %s)", *configPath)
	}
	if *amountSpecified == "" {
		return fmt.Errorf("missing -amount")
	}

	p, err := snapshot.LoadPoolFile(*snapshotPath)
	if err != nil {
		return err
	}

	amount, ok := new(big.Int).SetString(*amountSpecified, 10)
	if !ok {
		return fmt.Errorf("invalid -amount %q: not a decimal integer", *amountSpecified)
	}
	amountI256, err := fixedpoint.NewI256FromBig(amount)
	if err != nil {
		return fmt.Errorf("amount out of I256 range: %w", err)
	}

	limit, err := resolveSqrtPriceLimit(*sqrtPriceLimit, *zeroForOne)
	if err != nil {
		return err
	}

	params := pool.SwapParams{
		ZeroForOne:        *zeroForOne,
		AmountSpecified:   amountI256,
		SqrtPriceLimitX96: limit,
	}

	timer := prometheus.NewTimer(swapDuration)
	result, swapErr := p.SwapWithLogger(params, logger)
	timer.ObserveDuration()

	outcome := "ok"
	if swapErr != nil {
		outcome = "error"
	}
	swapsTotal.WithLabelValues(fmt.Sprint(*zeroForOne), outcome).Inc()
	if swapErr != nil {
		return fmt.Errorf("swap failed: %w", swapErr)
	}

	if *storePath != "" {
		if err := recordSwap(*storePath, *poolAddress, p, params, result, logger); err != nil {
			logger.Error("failed to persist swap to store", "error", err)
		}
	}

	out := swapOutput{
		Amount0:      result.Amount0,
		Amount1:      result.Amount1,
		SqrtPriceX96: p.Slot0.SqrtPriceX96.String(),
		Tick:         p.Slot0.Tick,
		Liquidity:    p.Liquidity.String(),
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func resolveSqrtPriceLimit(raw string, zeroForOne bool) (*big.Int, error) {
	if raw != "" {
		limit, ok := new(big.Int).SetString(raw, 10)
		if !ok {
			return nil, fmt.Errorf("invalid -sqrt-price-limit %q: not a decimal integer", raw)
		}
		return limit, nil
	}
	if zeroForOne {
		return new(big.Int).Add(fixedpoint.MinSqrtRatio, big.NewInt(1)), nil
	}
	return new(big.Int).Sub(fixedpoint.MaxSqrtRatio, big.NewInt(1)), nil
}

func recordSwap(storePath, poolAddressHex string, p *pool.Pool, params pool.SwapParams, result pool.SwapResult, logger *slog.Logger) error {
	st, err := store.Open(storePath)
	if err != nil {
		return err
	}
	defer st.Close()

	addr := common.HexToAddress(poolAddressHex)
	if err := st.RecordSwap(addr, p, params, result, time.Now()); err != nil {
		return err
	}
	logger.Debug("recorded swap", "store", storePath, "pool", addr.Hex())
	return nil
}
