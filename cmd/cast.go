package cmd

import (
	"errors"
	"fmt"

	"github.com/achilleasa/raycast/geom"
	"github.com/achilleasa/raycast/raycast"
	"github.com/achilleasa/raycast/reader"
	"github.com/achilleasa/raycast/types"
	"github.com/urfave/cli"
)

// Cast a single ray through a wavefront object file and print the nearest
// intersection.
func Cast(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("cast: expected a single mesh file argument")
	}

	origin, err := parseVec3Flag(ctx.String("origin"))
	if err != nil {
		return fmt.Errorf("cast: invalid origin: %s", err.Error())
	}
	dir, err := parseVec3Flag(ctx.String("dir"))
	if err != nil {
		return fmt.Errorf("cast: invalid dir: %s", err.Error())
	}
	dir = dir.Normalize()

	mesh, err := reader.ReadMesh(ctx.Args().First())
	if err != nil {
		return err
	}

	caster := raycast.New()
	caster.Options = optionsFromFlags(ctx)
	switch ctx.String("cull") {
	case "back":
		caster.Cull = geom.CullBack
	case "front":
		caster.Cull = geom.CullFront
	case "", "none":
		caster.Cull = geom.CullNone
	default:
		return fmt.Errorf("cast: unsupported cull mode '%s'", ctx.String("cull"))
	}

	obj := raycast.NewObject(mesh, types.Ident4())
	hits, err := caster.IntersectObject(obj, origin, dir, false)
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("no hit")
		return nil
	}

	hit := hits[0]
	fmt.Printf("hit triangle %d at distance %g\n", hit.Triangle, hit.Distance)
	fmt.Printf("  point:  (%g, %g, %g)\n", hit.Point[0], hit.Point[1], hit.Point[2])
	fmt.Printf("  normal: (%g, %g, %g)\n", hit.Normal[0], hit.Normal[1], hit.Normal[2])
	fmt.Printf("  bary:   u=%g v=%g\n", hit.U, hit.V)
	return nil
}
