package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/openmaptools/legalspeeds"
	"go.uber.org/zap"
)

var (
	rulesFileName = flag.String("rules", "legal_default_speeds.json", "Filename of rule data in the published JSON form")
	country       = flag.String("country", "", "ISO 3166-1 alpha-2 country code of the queried location. E.g.: DE")
	subdivision   = flag.String("subdivision", "", "Optional ISO 3166-2 subdivision code. E.g.: DE-NI (or just NI)")
	tagsStr       = flag.String("tags", "", "Road segment tags as key=value pairs separated by commas. E.g.: 'highway=residential,surface=gravel'")
	osmFileName   = flag.String("file", "", "Filename of *.osm.pbf file to annotate instead of answering a single -tags query")
	out           = flag.String("out", "annotated.geojson", "Filename of output for -file mode")
	outFormat     = flag.String("format", "geojson", "Format of -file mode output. Expected values: geojson / csv (semicolon-separated, WKT geometry)")
	keepExisting  = flag.Bool("keep-existing", false, "Annotate ways that already carry a maxspeed tag too")
)

func main() {
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer logger.Sync()

	table, err := legalspeeds.LoadRuleTableFromFile(*rulesFileName)
	if err != nil {
		logger.Fatal("can not load rule table", zap.String("rules", *rulesFileName), zap.Error(err))
	}
	logger.Info("rule table ready", zap.String("rules", *rulesFileName), zap.Int("rules_total", table.Len()))

	matcher := legalspeeds.NewMatcher(table)
	location := legalspeeds.NewLocation(*country, *subdivision)

	if *osmFileName != "" {
		annotateExtract(logger, matcher, location)
		return
	}

	tags, err := parseTagsFlag(*tagsStr)
	if err != nil {
		logger.Fatal("bad -tags value", zap.Error(err))
	}
	result := matcher.Infer(tags, location)
	if !result.Defined() {
		fmt.Println("no legal default")
		return
	}
	fmt.Printf("maxspeed: %s\n", result.General)
	if result.RoadType != "" {
		fmt.Printf("road type: %s\n", result.RoadType)
	}
	for vehicle, speed := range result.Overrides {
		fmt.Printf("maxspeed:%s: %s\n", vehicle, speed)
	}
}

func annotateExtract(logger *zap.Logger, matcher *legalspeeds.Matcher, location legalspeeds.Location) {
	annotator := legalspeeds.NewAnnotator(matcher, location,
		legalspeeds.WithKeepExisting(*keepExisting),
		legalspeeds.WithVerbose(true),
	)
	ways, err := annotator.AnnotateFromOSMFile(*osmFileName)
	if err != nil {
		logger.Fatal("annotation failed", zap.String("file", *osmFileName), zap.Error(err))
	}
	logger.Info("extract annotated", zap.String("file", *osmFileName), zap.Int("ways", len(ways)))

	outFile, err := os.Create(*out)
	if err != nil {
		logger.Fatal("can not create output file", zap.String("out", *out), zap.Error(err))
	}
	defer outFile.Close()

	switch *outFormat {
	case "geojson":
		collection := legalspeeds.PrepareGeoJSONFeatures(ways)
		if err := json.NewEncoder(outFile).Encode(collection); err != nil {
			logger.Fatal("can not write output file", zap.String("out", *out), zap.Error(err))
		}
	case "csv":
		if err := legalspeeds.WriteWaysCSV(outFile, ways); err != nil {
			logger.Fatal("can not write output file", zap.String("out", *out), zap.Error(err))
		}
	default:
		logger.Fatal("unknown output format", zap.String("format", *outFormat))
	}
	logger.Info("done", zap.String("out", *out), zap.String("format", *outFormat))
}

func parseTagsFlag(str string) (legalspeeds.TagSet, error) {
	tags := make(legalspeeds.TagSet)
	if strings.TrimSpace(str) == "" {
		return tags, nil
	}
	for _, pair := range strings.Split(str, ",") {
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("expected key=value, got '%s'", pair)
		}
		tags[strings.TrimSpace(parts[0])] = strings.TrimSpace(parts[1])
	}
	return tags, nil
}
