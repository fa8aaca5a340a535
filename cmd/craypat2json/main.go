package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/mbareford/io-calltree-viewer/internal/craypat"
	"github.com/mbareford/io-calltree-viewer/internal/flameplot"
	"github.com/mbareford/io-calltree-viewer/internal/logutil"
)

func main() {
	logutil.ConfigureLogger()

	args := os.Args[1:]
	opts := flameplot.Options{ColorByCalls: true}
	if len(args) > 0 && args[0] == "-random-colors" {
		opts.ColorByCalls = false
		args = args[1:]
	}
	if len(args) != 3 {
		fmt.Println("./craypat2json [-random-colors] <report file> <table title> <root function>") // nolint
		os.Exit(1)
	}

	path, tableTitle, rootFunc := args[0], args[1], args[2]

	ct, err := craypat.Import(path, tableTitle, rootFunc)
	if err != nil {
		log.Fatal().Err(err).Str("report", path).Msg("error importing the report")
	}

	title := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + " - " + rootFunc
	plot := flameplot.Build(ct, title, opts)

	enc := gojson.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plot); err != nil {
		log.Fatal().Err(err).Msg("error encoding the flame plot")
	}
}
