package cmd

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/achilleasa/raycast/bvh"
	"github.com/achilleasa/raycast/geom"
	"github.com/achilleasa/raycast/types"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Build a tree over a random triangle soup and measure query throughput.
func Bench(ctx *cli.Context) error {
	setupLogging(ctx)

	triCount := ctx.Int("triangles")
	rayCount := ctx.Int("rays")
	rng := rand.New(rand.NewSource(ctx.Int64("seed")))

	mesh := randomSoup(rng, triCount)

	buildStart := time.Now()
	tree, err := bvh.Build(mesh, optionsFromFlags(ctx))
	if err != nil {
		return err
	}
	buildTime := time.Since(buildStart)

	rays := make([]geom.Ray, rayCount)
	for i := range rays {
		origin := types.Vec3{rng.Float32()*4 - 2, rng.Float32()*4 - 2, rng.Float32()*4 - 2}
		target := types.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
		rays[i] = geom.NewRay(origin, target.Sub(origin).Normalize(), 0, math.MaxFloat32)
	}

	hitCount := 0
	queryStart := time.Now()
	for i := range rays {
		if _, ok := tree.NearestHit(&rays[i]); ok {
			hitCount++
		}
	}
	queryTime := time.Since(queryStart)

	raysPerSec := float64(rayCount) / queryTime.Seconds()

	fmt.Print(tree.Stats())

	table := tablewriter.NewWriter(os.Stdout)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Benchmark", "Value"})
	table.Append([]string{"Triangles", fmt.Sprintf("%d", triCount)})
	table.Append([]string{"Build time", fmt.Sprintf("%d ms", buildTime.Nanoseconds()/1e6)})
	table.Append([]string{"Rays cast", fmt.Sprintf("%d", rayCount)})
	table.Append([]string{"Hits", fmt.Sprintf("%d", hitCount)})
	table.Append([]string{"Throughput", fmt.Sprintf("%.0f rays/sec", raysPerSec)})
	table.Render()
	return nil
}

// Generate a deterministic soup of small triangles inside the unit-ish cube.
func randomSoup(rng *rand.Rand, triCount int) *geom.Mesh {
	mesh := &geom.Mesh{
		Positions: make([]types.Vec3, 0, triCount*3),
		Indices:   make([]uint32, 0, triCount*3),
	}

	for i := 0; i < triCount; i++ {
		base := types.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
		for v := 0; v < 3; v++ {
			offset := types.Vec3{rng.Float32()*0.2 - 0.1, rng.Float32()*0.2 - 0.1, rng.Float32()*0.2 - 0.1}
			mesh.Indices = append(mesh.Indices, uint32(len(mesh.Positions)))
			mesh.Positions = append(mesh.Positions, base.Add(offset))
		}
	}

	return mesh
}
