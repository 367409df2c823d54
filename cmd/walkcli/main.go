// walkcli inspects walkability meshes and actor feeds from the command line.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Faultbox/walkview/internal/logger"
	"github.com/Faultbox/walkview/internal/network"
	"github.com/Faultbox/walkview/internal/network/messages"
	"github.com/Faultbox/walkview/pkg/formats"
	"github.com/Faultbox/walkview/pkg/walkmesh"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "tiles":
		cmdTiles(args)
	case "classify":
		cmdClassify(args)
	case "watch":
		cmdWatch(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`walkcli - walkability mesh and actor feed utility

Usage:
  walkcli <command> [options]

Commands:
  info <file.obj>                          Show vertex, face and triangle counts
  tiles [-size N] <file.obj>               Show triangles per tile
  classify [-angle A] [-size N] <file.obj> Show walkable/unwalkable triangles per tile
  watch [-log LEVEL] [addr]                Print messages from an actor server

Examples:
  walkcli info terrain.obj
  walkcli tiles -size 500 terrain.obj
  walkcli classify -angle 30 terrain.obj
  walkcli watch 127.0.0.1:9999`)
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: walkcli info <file.obj>")
		os.Exit(1)
	}

	obj, err := formats.ParseOBJFile(args[0])
	if err != nil {
		fail(err)
	}
	stats := obj.Stats()
	mesh := walkmesh.NewMesh(obj)

	fmt.Printf("Mesh:      %s\n", args[0])
	fmt.Printf("Vertices:  %d\n", stats.Vertices)
	fmt.Printf("Faces:     %d\n", stats.Faces)
	fmt.Printf("Triangles: %d\n", stats.Triangles)
	if !mesh.Bounds.Empty() {
		lo, hi := mesh.Bounds.Min, mesh.Bounds.Max
		fmt.Printf("Bounds:    (%.2f, %.2f, %.2f) - (%.2f, %.2f, %.2f)\n",
			lo.X(), lo.Y(), lo.Z(), hi.X(), hi.Y(), hi.Z())
		c := mesh.Centroid()
		fmt.Printf("Centroid:  (%.2f, %.2f, %.2f)\n", c.X(), c.Y(), c.Z())
	}
}

func cmdTiles(args []string) {
	fs := flag.NewFlagSet("tiles", flag.ExitOnError)
	size := fs.Float64("size", float64(walkmesh.DefaultTileSize), "Tile edge length")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: walkcli tiles [-size N] <file.obj>")
		os.Exit(1)
	}

	snap, err := walkmesh.Build(walkmesh.Request{
		Path:       fs.Arg(0),
		TileSize:   float32(*size),
		SlopeAngle: walkmesh.DefaultSlopeAngle,
	})
	if err != nil {
		fail(err)
	}

	fmt.Printf("%-16s %10s\n", "Tile", "Triangles")
	total := 0
	for _, t := range snap.Tiles {
		fmt.Printf("%-16s %10d\n", t.Coord, t.TriangleCount())
		total += t.TriangleCount()
	}
	fmt.Printf("\n%d tiles, %d tile triangles (%d in mesh)\n",
		snap.TileCount(), total, snap.Mesh.TriangleCount())
}

func cmdClassify(args []string) {
	fs := flag.NewFlagSet("classify", flag.ExitOnError)
	angle := fs.Float64("angle", float64(walkmesh.DefaultSlopeAngle), "Walkable slope angle in degrees")
	size := fs.Float64("size", float64(walkmesh.DefaultTileSize), "Tile edge length")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: walkcli classify [-angle A] [-size N] <file.obj>")
		os.Exit(1)
	}

	req := walkmesh.Request{
		Path:       fs.Arg(0),
		TileSize:   float32(*size),
		SlopeAngle: float32(*angle),
	}
	snap, err := walkmesh.Build(req)
	if err != nil {
		fail(err)
	}

	fmt.Printf("%-16s %10s %10s\n", "Tile", "Walkable", "Blocked")
	for _, t := range snap.Tiles {
		s := walkmesh.ClassifyStats(t.Indices, t.Normals, req.SlopeAngle)
		fmt.Printf("%-16s %10d %10d\n", t.Coord, s.Walkable, s.Unwalkable)
	}
	fmt.Printf("\nTotal at %.1f degrees: %d walkable, %d blocked\n",
		req.SlopeAngle, snap.Slope.Walkable, snap.Slope.Unwalkable)
}

func cmdWatch(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	level := fs.String("log", "warn", "Log level (debug, info, warn, error)")
	timeout := fs.Duration("timeout", 5*time.Second, "Connect timeout")
	fs.Parse(args)

	addr := "127.0.0.1:9999"
	if fs.NArg() > 0 {
		addr = fs.Arg(0)
	}

	if err := logger.Init(*level, ""); err != nil {
		fail(err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dialCtx, cancel := context.WithTimeout(ctx, *timeout)
	client, err := network.Dial(dialCtx, addr)
	cancel()
	if err != nil {
		fail(err)
	}
	defer client.Close()

	fmt.Fprintf(os.Stderr, "Watching %s (Ctrl+C to stop)\n", addr)

	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		msgs, err := client.Poll()
		for _, msg := range msgs {
			printMessage(msg)
		}
		if err == nil {
			continue
		}
		if errors.Is(err, network.ErrBadFrame) {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		fmt.Fprintf(os.Stderr, "Connection closed: %v\n", err)
		return
	}
}

func printMessage(msg messages.Message) {
	data, err := messages.Encode(msg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return
	}
	fmt.Printf("%s %s\n", time.Now().Format("15:04:05.000"), data)
}
