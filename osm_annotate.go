package legalspeeds

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/pkg/errors"
)

// GeoPoint Representation of point on Earth
type GeoPoint struct {
	Lat float64
	Lon float64
}

// String Pretty printing for GeoPoint
func (gp GeoPoint) String() string {
	return fmt.Sprintf("Lon: %f | Lat: %f", gp.Lon, gp.Lat)
}

// AnnotatedWay OSM way together with the inferred default speed limit
type AnnotatedWay struct {
	ID    osm.WayID
	Name  string
	Speed MatchResult
	Geom  []GeoPoint
}

// Annotator Streams ways out of an OSM extract and attaches inferred
// default limits. The whole extract is assumed to lie in one jurisdiction
// (one country / subdivision); per-way jurisdiction lookup would need a
// boundary index which is not this library's business.
type Annotator struct {
	matcher      *Matcher
	location     Location
	processes    int
	keepExisting bool
	verbose      bool
}

// NewAnnotator Creates annotator over a matching engine
func NewAnnotator(matcher *Matcher, location Location, options ...func(*Annotator)) *Annotator {
	annotator := &Annotator{
		matcher:      matcher,
		location:     location,
		processes:    4,
		keepExisting: false,
		verbose:      false,
	}
	for _, option := range options {
		option(annotator)
	}
	return annotator
}

func WithProcesses(processes int) func(*Annotator) {
	return func(annotator *Annotator) {
		annotator.processes = processes
	}
}

// WithKeepExisting Also annotate ways that already carry a maxspeed tag.
// By default such ways are skipped: a posted limit makes the legal default
// irrelevant.
func WithKeepExisting(keepExisting bool) func(*Annotator) {
	return func(annotator *Annotator) {
		annotator.keepExisting = keepExisting
	}
}

func WithVerbose(verbose bool) func(*Annotator) {
	return func(annotator *Annotator) {
		annotator.verbose = verbose
	}
}

// AnnotateFromOSMFile Imports ways from file of PBF-format (in OSM terms)
// and infers the default limit for each road among them.
/*
	File should have PBF (Protocolbuffer Binary Format) extension according to https://github.com/paulmach/osm
*/
func (annotator *Annotator) AnnotateFromOSMFile(fileName string) ([]AnnotatedWay, error) {
	f, err := os.Open(fileName)
	if err != nil {
		return nil, errors.Wrap(err, "File open")
	}
	defer f.Close()

	scannerWays := osmpbf.New(context.Background(), f, annotator.processes)
	defer scannerWays.Close()

	type pendingWay struct {
		id    osm.WayID
		name  string
		nodes osm.WayNodes
		speed MatchResult
	}

	ways := []pendingWay{}
	nodesSeen := make(map[osm.NodeID]struct{})

	if annotator.verbose {
		fmt.Printf("Scanning ways...")
	}
	st := time.Now()
	for scannerWays.Scan() {
		obj := scannerWays.Object()
		if obj.ObjectID().Type() != "way" {
			continue
		}
		way := obj.(*osm.Way)
		tags := FromOSMTags(way.Tags)
		if !tags.Has("highway") {
			continue
		}
		if !annotator.keepExisting && tags.Has("maxspeed") {
			continue
		}
		result := annotator.matcher.Infer(tags, annotator.location)
		if !result.Defined() {
			continue
		}
		preparedWay := pendingWay{
			id:    way.ID,
			name:  tags.Find("name"),
			nodes: make(osm.WayNodes, len(way.Nodes)),
			speed: result,
		}
		copy(preparedWay.nodes, way.Nodes)
		ways = append(ways, preparedWay)
		for _, node := range way.Nodes {
			nodesSeen[node.ID] = struct{}{}
		}
	}
	if scannerWays.Err() != nil {
		return nil, errors.Wrap(scannerWays.Err(), "Scanner error on Ways")
	}
	if annotator.verbose {
		fmt.Printf("Done in %v\n\tWays: %d\n", time.Since(st), len(ways))
	}

	// Seek file to start
	_, err = f.Seek(0, io.SeekStart)
	if err != nil {
		return nil, errors.Wrap(err, "Can't repeat seeking")
	}
	scannerNodes := osmpbf.New(context.Background(), f, annotator.processes)
	defer scannerNodes.Close()

	nodes := make(map[osm.NodeID]GeoPoint)
	if annotator.verbose {
		fmt.Printf("Scanning nodes...")
	}
	st = time.Now()
	for scannerNodes.Scan() {
		obj := scannerNodes.Object()
		if obj.ObjectID().Type() != "node" {
			continue
		}
		node := obj.(*osm.Node)
		if _, ok := nodesSeen[node.ID]; ok {
			delete(nodesSeen, node.ID)
			nodes[node.ID] = GeoPoint{Lat: node.Lat, Lon: node.Lon}
		}
	}
	if scannerNodes.Err() != nil {
		return nil, errors.Wrap(scannerNodes.Err(), "Scanner error on Nodes")
	}
	if annotator.verbose {
		fmt.Printf("Done in %v\n\tNodes: %d\n", time.Since(st), len(nodes))
	}

	annotated := make([]AnnotatedWay, 0, len(ways))
	for _, way := range ways {
		geometry := make([]GeoPoint, 0, len(way.nodes))
		for _, wayNode := range way.nodes {
			point, ok := nodes[wayNode.ID]
			if !ok {
				return nil, fmt.Errorf("Missing node with id: %d", wayNode.ID)
			}
			geometry = append(geometry, point)
		}
		annotated = append(annotated, AnnotatedWay{
			ID:    way.id,
			Name:  way.name,
			Speed: way.speed,
			Geom:  geometry,
		})
	}
	return annotated, nil
}
