/*
Package workers sizes and runs bounded worker pools in containerized
environments.

runtime.NumCPU reports the host's CPUs, not the container's cgroup limit.
Since Go 1.19 GOMAXPROCS follows the limit, so the helpers here derive worker
counts from it:

	numWorkers := workers.ForCPU(8)   // 1 per CPU, at most 8
	numWorkers := workers.ForIO(16)   // 2 per CPU, at most 16
	numWorkers := workers.ForMixed(8) // 1.5 per CPU, at most 8

Card rendering downloads a source image, decodes it, composes the card and
encodes a PNG, so the CLI sizes its pool with ForMixed.

# Environment Variable Override

All sizing functions respect RENDER_WORKERS, which pins the count (still
capped by the limit argument):

	RENDER_WORKERS=4 thumbcard render dQw4w9WgXcQ 9bZkp7q19f0

# Running Jobs

Run fans a slice out over n goroutines and collects one error per item in
input order:

	errs := workers.Run(ctx, workers.ForMixed(8), ids, func(ctx context.Context, id string) error {
		_, err := gen.GetThumb(ctx, id)
		return err
	})

Items that have not started when ctx is cancelled report ctx.Err() without
calling the function.
*/
package workers
