package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/raycast/bvh"
	"github.com/achilleasa/raycast/reader"
	"github.com/urfave/cli"
)

// Build a tree for a wavefront object file and print its statistics.
func Info(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("info: expected a single mesh file argument")
	}

	mesh, err := reader.ReadMesh(ctx.Args().First())
	if err != nil {
		return err
	}

	start := time.Now()
	tree, err := bvh.Build(mesh, optionsFromFlags(ctx))
	if err != nil {
		return err
	}
	logger.Noticef("built tree for %d triangles in %d ms", mesh.TriangleCount(), time.Since(start).Nanoseconds()/1e6)

	fmt.Print(tree.Stats())
	return nil
}
