package main

import (
	"os"

	"github.com/achilleasa/raycast/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raycast"
	app.Usage = "build and query bounding volume hierarchies over triangle meshes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "info",
			Usage: "build a tree for a mesh and print its statistics",
			Description: `
Parse a triangle mesh from a wavefront obj file, build a tree over it using
binned surface-area-heuristic partitioning and print the resulting tree
layout and memory statistics.`,
			ArgsUsage: "mesh_file.obj",
			Flags:     cmd.BuildFlags,
			Action:    cmd.Info,
		},
		{
			Name:      "cast",
			Usage:     "cast a single ray through a mesh",
			ArgsUsage: "mesh_file.obj",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "origin",
					Value: "0,0,5",
					Usage: "ray origin as x,y,z",
				},
				cli.StringFlag{
					Name:  "dir",
					Value: "0,0,-1",
					Usage: "ray direction as x,y,z (normalized internally)",
				},
				cli.StringFlag{
					Name:  "cull",
					Value: "none",
					Usage: "culling mode: none, back or front",
				},
			}, cmd.BuildFlags...),
			Action: cmd.Cast,
		},
		{
			Name:  "bench",
			Usage: "measure build and query performance on a random triangle soup",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "triangles",
					Value: 100000,
					Usage: "number of random triangles",
				},
				cli.IntFlag{
					Name:  "rays",
					Value: 100000,
					Usage: "number of random rays to cast",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 42,
					Usage: "seed for the random generator",
				},
			}, cmd.BuildFlags...),
			Action: cmd.Bench,
		},
	}

	if err := app.Run(os.Args); err != nil {
		os.Stderr.WriteString("error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
