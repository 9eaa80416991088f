// Package validator defines the external biome-viability oracle contract.
// The oracle itself is a native, version-pinned structure-placement checker
// (e.g. a cubiomes-backed shim); this package only specifies how the
// pipeline talks to it and what happens when it's absent.
package validator

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"

	"github.com/BrianBLee1201/DoubleTripleQuadMonumentFinder/oerror"
)

// Validator is the capability surface the pipeline needs: a batched
// viability check over chunk coordinates. A single-item caller dispatches
// trivially to the batch path with n=1 — there is deliberately no separate
// single-item method here.
type Validator interface {
	// IsViableBatch fills out[i] for each (chunkXs[i], chunkZs[i]).
	IsViableBatch(chunkXs, chunkZs []int32, out []bool) error
	// Close releases any resources (process handle, native handle) held by
	// the validator.
	Close() error
}

// ErrUnavailable is wrapped into the error NewProcess returns when the
// validator binary could not be started. It is not itself fatal — callers should log it as a warning
// and proceed with the None validator, which yields a superset of results.
var ErrUnavailable = oerror.New("validator: native oracle unavailable")

// None is a Validator that accepts every candidate — i.e. no validation at
// all. The pipeline uses this by default: absence of a validator is
// explicitly legal and yields a superset of placement-only candidates,
// never fewer than the true answer.
type None struct{}

func (None) IsViableBatch(chunkXs, chunkZs []int32, out []bool) error {
	for i := range out {
		out[i] = true
	}
	return nil
}

func (None) Close() error { return nil }

// Process is a Validator backed by an external subprocess, speaking a
// line-delimited JSON protocol over its stdin/stdout instead of a JNI/cgo
// bridge: each line in is a batch request, each line out is the matching
// batch response. This keeps the native oracle fully out-of-process, so a
// crash in the oracle surfaces as an ordinary I/O error rather than taking
// the Go process down with it.
type Process struct {
	mu  sync.Mutex
	cmd *exec.Cmd
	in  *json.Encoder
	out *bufio.Scanner
}

type batchRequest struct {
	ChunkXs []int32 `json:"chunkXs"`
	ChunkZs []int32 `json:"chunkZs"`
}

type batchResponse struct {
	Flags []bool `json:"flags"`
	Error string `json:"error,omitempty"`
}

// NewProcess launches the validator binary at path and performs a
// handshake-free first batch call lazily on first use. seed and
// versionOrdinal are passed as command-line arguments, matching the
// create(seed, versionOrdinal) step of the FFI contract.
func NewProcess(path string, seed int64, versionOrdinal int) (*Process, error) {
	cmd := exec.Command(path, fmt.Sprintf("%d", seed), fmt.Sprintf("%d", versionOrdinal))
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 1<<20), 1<<24)

	return &Process{
		cmd: cmd,
		in:  json.NewEncoder(stdin),
		out: scanner,
	}, nil
}

// IsViableBatch sends one batch request and blocks for the matching
// response. The caller is responsible for chunking large candidate lists
// into the configured batch size (ValidatorBatchSize) before calling this.
func (p *Process) IsViableBatch(chunkXs, chunkZs []int32, out []bool) error {
	if len(chunkXs) != len(chunkZs) || len(chunkXs) != len(out) {
		return oerror.New("validator: mismatched batch slice lengths")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.in.Encode(batchRequest{ChunkXs: chunkXs, ChunkZs: chunkZs}); err != nil {
		return fmt.Errorf("validator: write batch request: %w", err)
	}
	if !p.out.Scan() {
		if err := p.out.Err(); err != nil {
			return fmt.Errorf("validator: read batch response: %w", err)
		}
		return oerror.New("validator: oracle closed its output stream")
	}

	var resp batchResponse
	if err := json.Unmarshal(p.out.Bytes(), &resp); err != nil {
		return fmt.Errorf("validator: decode batch response: %w", err)
	}
	if resp.Error != "" {
		return oerror.New("validator: oracle reported error: %s", resp.Error)
	}
	if len(resp.Flags) != len(out) {
		return oerror.New("validator: oracle returned %d flags for %d inputs", len(resp.Flags), len(out))
	}
	copy(out, resp.Flags)
	return nil
}

// Close kills the subprocess and waits for it to exit.
func (p *Process) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.cmd.Process.Kill()
	return p.cmd.Wait()
}
