package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/achilleasa/raycast/bvh"
	"github.com/achilleasa/raycast/types"
	"github.com/urfave/cli"
)

// Construction flags shared by all commands that build a tree.
var BuildFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "max-leaf-size",
		Value: bvh.DefaultMaxLeafSize,
		Usage: "max triangles per tree leaf",
	},
	cli.IntFlag{
		Name:  "bins",
		Value: bvh.DefaultBinCount,
		Usage: "SAH bins evaluated per axis",
	},
	cli.Float64Flag{
		Name:  "traversal-cost",
		Value: bvh.DefaultTraversalCost,
		Usage: "SAH cost of visiting a node",
	},
	cli.Float64Flag{
		Name:  "intersect-cost",
		Value: bvh.DefaultIntersectCost,
		Usage: "SAH cost of testing a triangle",
	},
}

func optionsFromFlags(ctx *cli.Context) bvh.Options {
	return bvh.Options{
		MaxLeafSize:   ctx.Int("max-leaf-size"),
		BinCount:      ctx.Int("bins"),
		TraversalCost: float32(ctx.Float64("traversal-cost")),
		IntersectCost: float32(ctx.Float64("intersect-cost")),
	}
}

// Parse a comma-separated vector flag value, e.g. "0,0,-1".
func parseVec3Flag(value string) (types.Vec3, error) {
	tokens := strings.Split(value, ",")
	if len(tokens) != 3 {
		return types.Vec3{}, fmt.Errorf("expected 3 comma-separated components; got '%s'", value)
	}

	var out types.Vec3
	for i, token := range tokens {
		v, err := strconv.ParseFloat(strings.TrimSpace(token), 32)
		if err != nil {
			return types.Vec3{}, fmt.Errorf("could not parse component '%s'", token)
		}
		out[i] = float32(v)
	}

	return out, nil
}
